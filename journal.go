// seehuhn.de/go/inktrace - a variable-width ink trail renderer
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package inktrace

import (
	"iter"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/vec"
)

// Segment is one quadratic piece of the trail, in logical coordinates.
type Segment struct {
	// Stroke identifies the run of samples the segment belongs to.  A new
	// stroke starts after every continuity reset.
	Stroke uuid.UUID

	P0, Ctrl, P1 vec.Vec2

	Width float64
	Time  float64 // timestamp of the sample which completed the segment
}

// Journal records the most recently drawn segments.  Once the journal is
// full, the oldest segments are discarded.
type Journal struct {
	segs    []Segment
	start   int
	dropped int
}

func newJournal(capacity int) *Journal {
	return &Journal{segs: make([]Segment, 0, capacity)}
}

func (j *Journal) add(s Segment) {
	switch {
	case cap(j.segs) == 0:
		j.dropped++
	case len(j.segs) < cap(j.segs):
		j.segs = append(j.segs, s)
	default:
		j.segs[j.start] = s
		j.start = (j.start + 1) % len(j.segs)
		j.dropped++
	}
}

// Len returns the number of segments in the journal.
func (j *Journal) Len() int {
	return len(j.segs)
}

// Dropped returns the number of segments which were discarded because the
// journal was full.
func (j *Journal) Dropped() int {
	return j.dropped
}

// All iterates over the segments, oldest first.
func (j *Journal) All() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		n := len(j.segs)
		for i := range n {
			if !yield(j.segs[(j.start+i)%n]) {
				return
			}
		}
	}
}

// Segments returns a copy of the segments, oldest first.
func (j *Journal) Segments() []Segment {
	res := make([]Segment, 0, len(j.segs))
	for s := range j.All() {
		res = append(res, s)
	}
	return res
}

// Strokes groups the segments by stroke, in drawing order.
func (j *Journal) Strokes() [][]Segment {
	var res [][]Segment
	for s := range j.All() {
		if k := len(res); k > 0 && res[k-1][0].Stroke == s.Stroke {
			res[k-1] = append(res[k-1], s)
			continue
		}
		res = append(res, []Segment{s})
	}
	return res
}

// Reset removes all segments.
func (j *Journal) Reset() {
	j.segs = j.segs[:0]
	j.start = 0
	j.dropped = 0
}

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
	"bytes"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/vec"
)

func TestJournalWraps(t *testing.T) {
	j := newJournal(3)
	id := uuid.New()
	for i := range 5 {
		j.add(Segment{Stroke: id, P1: vec.Vec2{X: float64(i)}})
	}

	if j.Len() != 3 || j.Dropped() != 2 {
		t.Fatalf("len %d, dropped %d, want 3, 2", j.Len(), j.Dropped())
	}
	for i, s := range j.Segments() {
		if want := float64(i + 2); s.P1.X != want {
			t.Errorf("segment %d: X = %g, want %g", i, s.P1.X, want)
		}
	}

	for range j.All() {
		break
	}

	j.Reset()
	if j.Len() != 0 || j.Dropped() != 0 || len(j.Segments()) != 0 {
		t.Error("journal not empty after Reset")
	}
}

func TestJournalStrokes(t *testing.T) {
	j := newJournal(10)
	a, b := uuid.New(), uuid.New()
	for _, id := range []uuid.UUID{a, a, b, a} {
		j.add(Segment{Stroke: id})
	}

	strokes := j.Strokes()
	lengths := []int{2, 1, 1}
	if len(strokes) != len(lengths) {
		t.Fatalf("got %d strokes, want %d", len(strokes), len(lengths))
	}
	for i, s := range strokes {
		if len(s) != lengths[i] {
			t.Errorf("stroke %d has %d segments, want %d", i, len(s), lengths[i])
		}
	}
}

func TestWritePDF(t *testing.T) {
	j := newJournal(10)
	id := uuid.New()
	j.add(Segment{Stroke: id, P0: vec.Vec2{X: 10, Y: 10}, Ctrl: vec.Vec2{X: 10, Y: 10}, P1: vec.Vec2{X: 30, Y: 20}, Width: 3})
	j.add(Segment{Stroke: id, P0: vec.Vec2{X: 30, Y: 20}, Ctrl: vec.Vec2{X: 50, Y: 30}, P1: vec.Vec2{X: 60, Y: 60}, Width: 1})

	fname := filepath.Join(t.TempDir(), "trail.pdf")
	opt := &PDFOptions{Width: 100, Height: 80, Paper: 1, Ink: Gray(DefaultConfig().Color), Config: DefaultConfig()}
	if err := j.WritePDF(fname, opt); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(len(data), 16)])
	}

	if err := j.WritePDF(fname, &PDFOptions{}); err == nil {
		t.Error("empty page accepted")
	}
}

func TestWritePDFDefaults(t *testing.T) {
	j := newJournal(10)
	j.add(Segment{P0: vec.Vec2{X: 10, Y: 10}, Ctrl: vec.Vec2{X: 40, Y: 10}, P1: vec.Vec2{X: 70, Y: 30}, Width: 4})

	opt := j.defaultPDFOptions()
	if opt.Width != 72 || opt.Height != 32 {
		t.Errorf("default page %gx%g, want 72x32", opt.Width, opt.Height)
	}
	if opt.Paper != 1 || opt.Config != DefaultConfig() {
		t.Errorf("default options %+v", opt)
	}

	fname := filepath.Join(t.TempDir(), "trail.pdf")
	if err := j.WritePDF(fname, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(fname); err != nil {
		t.Error(err)
	}

	if err := newJournal(10).WritePDF(fname, nil); err == nil {
		t.Error("empty journal written without a page size")
	}
}

func TestGray(t *testing.T) {
	if g := Gray(color.NRGBA{R: 255, G: 255, B: 255, A: 255}); math.Abs(g-1) > 1e-9 {
		t.Errorf("Gray(white) = %g", g)
	}
	if g := Gray(color.NRGBA{A: 255}); g != 0 {
		t.Errorf("Gray(black) = %g", g)
	}
}

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

package raster

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

func (e *edge) yTop() float64    { return min(e.y0, e.y1) }
func (e *edge) yBottom() float64 { return max(e.y0, e.y1) }

// xAt returns the x coordinate of the edge's line at height y.
func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// accumulate adds the contribution of the part of e inside scanline y to
// the cover and area buffers of that row.  The buffers are indexed by
// x-xMin.  Parts of the edge to the left of xMin are folded into the first
// pixel, parts to the right of xMax are dropped.  The return value reports
// whether anything was added.
func (e *edge) accumulate(y int, cover, area []float32, xMin, xMax int) bool {
	top := max(float64(y), e.yTop())
	bottom := min(float64(y+1), e.yBottom())
	if bottom <= top {
		return false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa, xb := e.xAt(top), e.xAt(bottom)
	if xa > xb {
		xa, xb = xb, xa
	}
	first := int(math.Floor(xa))
	last := int(math.Floor(xb))

	switch {
	case last < xMin:
		c := sign * float32(bottom-top)
		cover[0] += c
		area[0] += c
		return true
	case first >= xMax:
		return false
	case first == last:
		e.addPiece(first, top, bottom, sign, cover, area, xMin, xMax)
		return true
	}

	// The edge crosses several pixel columns; split it at the column
	// boundaries.
	dydx := 1 / e.dxdy
	for px := first; px <= last; px++ {
		ya := e.y0 + dydx*(float64(px)-e.x0)
		yb := e.y0 + dydx*(float64(px+1)-e.x0)
		lo := max(min(ya, yb), top)
		hi := min(max(ya, yb), bottom)
		if hi <= lo {
			continue
		}
		e.addPiece(px, lo, hi, sign, cover, area, xMin, xMax)
	}
	return true
}

// addPiece records the part of e between heights lo and hi, which lies
// inside pixel column px.
func (e *edge) addPiece(px int, lo, hi float64, sign float32, cover, area []float32, xMin, xMax int) {
	c := sign * float32(hi-lo)
	switch {
	case px < xMin:
		cover[0] += c
		area[0] += c
	case px < xMax:
		frac := e.xAt((lo+hi)/2) - float64(px)
		i := px - xMin
		cover[i] += c
		area[i] += c * float32(1-frac)
	}
}

// beginEdges clears the edge list before a new shape is collected.
func (r *Rasteriser) beginEdges() {
	r.edges = r.edges[:0]
	r.bboxSet = false
}

// addEdge transforms the user space segment p0-p1 to device space and
// appends it to the edge list.  Horizontal edges are dropped.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	m := r.CTM
	x0 := m[0]*p0.X + m[2]*p0.Y + m[4]
	y0 := m[1]*p0.X + m[3]*p0.Y + m[5]
	x1 := m[0]*p1.X + m[2]*p1.Y + m[4]
	y1 := m[1]*p1.X + m[3]*p1.Y + m[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	bx0, bx1 := min(x0, x1), max(x0, x1)
	by0, by1 := min(y0, y1), max(y0, y1)
	if !r.bboxSet {
		r.bbox = [4]float64{bx0, bx1, by0, by1}
		r.bboxSet = true
		return
	}
	r.bbox[0] = min(r.bbox[0], bx0)
	r.bbox[1] = max(r.bbox[1], bx1)
	r.bbox[2] = min(r.bbox[2], by0)
	r.bbox[3] = max(r.bbox[3], by1)
}

// edgeBounds returns the pixel range covered by the edge list, clipped to
// r.Clip.  The upper bounds are exclusive.
func (r *Rasteriser) edgeBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}
	xMin = max(int(math.Floor(r.bbox[0])), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bbox[1]))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.bbox[2])), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.bbox[3]))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// deviceLength returns the length of v after applying the linear part of
// the CTM.
func (r *Rasteriser) deviceLength(v vec.Vec2) float64 {
	m := r.CTM
	return math.Hypot(m[0]*v.X+m[2]*v.Y, m[1]*v.X+m[3]*v.Y)
}

// flattenQuadratic approximates the quadratic Bézier curve p0, p1, p2 by
// line segments and calls emit for each of them.  The number of segments
// is chosen so that the error in device space stays below r.Flatness.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(a, b vec.Vec2)) {
	// The deviation from the chord is bounded by |p0 - 2p1 + p2|/4.
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(min(math.Sqrt(dev/r.Flatness), maxFlattenSegments)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's formula for the segment count.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(a, b vec.Vec2)) {
	d1 := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3))
	n := 1
	if m := max(d1, d2); m > 0 {
		if k := math.Sqrt(3 * m / (4 * r.Flatness)); k > 1 {
			n = int(math.Ceil(min(k, maxFlattenSegments)))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

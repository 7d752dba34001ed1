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

// Package raster turns paths into anti-aliased pixel coverage.
//
// A [Rasteriser] reports, for each scanline touched by a shape, the
// fraction of every pixel covered by the shape.  Coverage is delivered
// through a callback so that callers can composite it into whatever pixel
// format they use.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one scanline.  Coverage values lie in
// [0, 1] and start at pixel column xMin.  The slice is only valid during
// the call.
type EmitFunc func(y, xMin int, coverage []float32)

// Rasteriser converts paths to pixel coverage.
// Internal buffers grow as needed and are reused between calls, so that a
// long-lived Rasteriser does not allocate in steady state.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space.  Must be non-singular.
	CTM matrix.Matrix

	// Clip limits the output to this device-space rectangle.
	// The coordinates must be integers.
	Clip rect.Rect

	// Flatness is the curve approximation tolerance in device pixels.
	Flatness float64

	// Width is the stroke width in user space units.
	Width float64

	// Cap is the style used at the two ends of an open stroke.
	Cap graphics.LineCapStyle

	// Join is the style used where two stroke segments meet.
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins.  Must be at least 1.
	MiterLimit float64

	// smallPathThreshold is the largest bounding box area, in pixels, for
	// which the whole box is accumulated at once.  Larger shapes are
	// processed one scanline at a time using an active edge list.
	smallPathThreshold int

	cover     []float32 // per-pixel change of winding; reused as output
	area      []float32 // per-pixel area contribution
	edges     []edge
	activeIdx []int
	rowUsed   []bool

	// stroke outline polygons, stored back to back
	outline        []vec.Vec2
	outlineOffsets []int

	// flattened stroke input
	segs      []strokeSegment
	segStarts []int
	dots      []vec.Vec2 // subpaths without a direction

	bbox    [4]float64 // xMin, xMax, yMin, yMax of the edges, device space
	bboxSet bool
}

// NewRasteriser returns a Rasteriser which writes into the given clip
// rectangle.  All other parameters are set to the PDF defaults.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is retained.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
	r.smallPathThreshold = smallPathThreshold

	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
	r.outline = r.outline[:0]
	r.outlineOffsets = r.outlineOffsets[:0]
	r.segs = r.segs[:0]
	r.segStarts = r.segStarts[:0]
	r.dots = r.dots[:0]
}

// Fill fills the path using the nonzero winding rule.
func (r *Rasteriser) Fill(p *path.Data, emit EmitFunc) {
	r.beginEdges()
	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if current != start {
				r.addEdge(current, start)
			}
			current = p.Coords[k]
			start = current
			k++
		case path.CmdLineTo:
			r.addEdge(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], r.addEdge)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addEdge)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				r.addEdge(current, start)
			}
			current = start
		}
	}
	// open subpaths are filled as if they were closed
	if current != start {
		r.addEdge(current, start)
	}
	r.render(emit)
}

// render scan-converts the collected edges.
func (r *Rasteriser) render(emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.edgeBounds()
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.renderBox(xMin, xMax, yMin, yMax, emit)
	} else {
		r.renderScanlines(xMin, xMax, yMin, yMax, emit)
	}
}

// renderBox accumulates all edges into a buffer covering the whole
// bounding box, then integrates row by row.
func (r *Rasteriser) renderBox(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	w := xMax - xMin
	h := yMax - yMin
	n := w * h
	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]
	r.rowUsed = slices.Grow(r.rowUsed[:0], h)[:h]
	clear(r.cover)
	clear(r.area)
	clear(r.rowUsed)

	for i := range r.edges {
		e := &r.edges[i]
		lo := max(int(math.Floor(e.yTop())), yMin)
		hi := min(int(math.Floor(e.yBottom()))+1, yMax)
		for y := lo; y < hi; y++ {
			row := y - yMin
			off := row * w
			e.accumulate(y, r.cover[off:off+w], r.area[off:off+w], xMin, xMax)
			r.rowUsed[row] = true
		}
	}

	for row := range h {
		if !r.rowUsed[row] {
			continue
		}
		off := row * w
		cov := r.cover[off : off+w]
		integrateNonZero(cov, r.area[off:off+w])
		if trimmed, start := trimZeros(cov); trimmed != nil {
			emit(yMin+row, xMin+start, trimmed)
		}
	}
}

// renderScanlines processes one scanline at a time, keeping a list of the
// edges which intersect the current row.
func (r *Rasteriser) renderScanlines(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	w := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], w)[:w]
	r.area = slices.Grow(r.area[:0], w)[:w]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.yTop(), b.yTop())
	})

	r.activeIdx = r.activeIdx[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top := float64(y)
		bottom := float64(y + 1)

		for next < len(r.edges) && r.edges[next].yTop() < bottom {
			r.activeIdx = append(r.activeIdx, next)
			next++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if e.yBottom() <= top {
				last := len(r.activeIdx) - 1
				r.activeIdx[i] = r.activeIdx[last]
				r.activeIdx = r.activeIdx[:last]
				continue
			}
			if e.accumulate(y, r.cover, r.area, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrateNonZero(r.cover, r.area)
		if trimmed, start := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+start, trimmed)
		}
	}
}

// integrateNonZero turns the accumulated cover and area values of one row
// into coverage, in place.
//
// For every pixel, cover holds the signed vertical extent of all edge
// pieces inside the pixel and area holds the same weighted by the part of
// the pixel to the right of the edge.  The coverage of a pixel is the sum
// of cover over all pixels to its left plus its own area, with the
// absolute value clamped to 1.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// trimZeros strips leading and trailing zeros.  The second return value
// is the index of the first element kept.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is the curve flattening tolerance in device pixels.
	// 0.25 is below the threshold of visual perception.
	defaultFlatness = 0.25

	// maxFlattenSegments bounds the number of line segments used for a
	// single curve.
	maxFlattenSegments = 1 << 16

	// defaultMiterLimit matches PDF and PostScript.
	defaultMiterLimit = 10.0

	// smallPathThreshold selects between renderBox and renderScanlines.
	smallPathThreshold = 65536

	// horizontalEdgeThreshold is the smallest vertical extent for an edge
	// to contribute coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the smallest length of a stroke segment.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is the largest |sin θ| between consecutive
	// stroke segments which is treated as a straight continuation.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold detects segments which double back, cos(179.43°).
	cuspCosineThreshold = -0.9999
)

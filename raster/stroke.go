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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a flattened piece of a stroked path, in user space.
type strokeSegment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent, A to B
	N    vec.Vec2 // unit normal, T rotated by +90°
}

// Stroke paints the outline obtained by stroking p with the current
// Width, Cap, Join and MiterLimit.  Subpaths which consist of a single
// point are painted as dots when round caps are used.
//
// A closed subpath is stroked as an open line which returns to its start.
func (r *Rasteriser) Stroke(p *path.Data, emit EmitFunc) {
	r.flattenStroke(p)

	r.outline = r.outline[:0]
	r.outlineOffsets = r.outlineOffsets[:0]
	d := r.Width / 2

	if r.Cap == graphics.LineCapRound {
		for _, pt := range r.dots {
			start := len(r.outline)
			r.addArc(pt, d, vec.Vec2{X: 1}, 2*math.Pi, true)
			r.outlineOffsets = append(r.outlineOffsets, start)
		}
	}

	for i, start := range r.segStarts {
		end := len(r.segs)
		if i+1 < len(r.segStarts) {
			end = r.segStarts[i+1]
		}
		first := len(r.outline)
		r.strokeOpen(r.segs[start:end], d)
		if len(r.outline)-first < 3 {
			r.outline = r.outline[:first]
			continue
		}
		r.outlineOffsets = append(r.outlineOffsets, first)
	}

	// All outline polygons are filled together, so that overlapping parts
	// are painted only once.
	r.beginEdges()
	for i, start := range r.outlineOffsets {
		end := len(r.outline)
		if i+1 < len(r.outlineOffsets) {
			end = r.outlineOffsets[i+1]
		}
		poly := r.outline[start:end]
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}
	r.render(emit)
}

// flattenStroke splits p into subpaths of line segments.
// The results are stored in r.segs, r.segStarts and r.dots.
func (r *Rasteriser) flattenStroke(p *path.Data) {
	r.segs = r.segs[:0]
	r.segStarts = r.segStarts[:0]
	r.dots = r.dots[:0]

	var current, start vec.Vec2
	open := false  // inside a subpath
	drawn := false // the subpath has a drawing command
	first := 0     // index of the subpath's first segment

	finish := func() {
		switch {
		case !open || !drawn:
		case len(r.segs) == first:
			r.dots = append(r.dots, start)
		default:
			r.segStarts = append(r.segStarts, first)
		}
		open = false
		drawn = false
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			finish()
			current = p.Coords[k]
			start = current
			first = len(r.segs)
			open = true
			k++
		case path.CmdLineTo:
			if open {
				drawn = true
				r.addStrokeSegment(current, p.Coords[k])
				current = p.Coords[k]
			}
			k++
		case path.CmdQuadTo:
			if open {
				drawn = true
				r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], r.addStrokeSegment)
				current = p.Coords[k+1]
			}
			k += 2
		case path.CmdCubeTo:
			if open {
				drawn = true
				r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addStrokeSegment)
				current = p.Coords[k+2]
			}
			k += 3
		case path.CmdClose:
			if open {
				drawn = true
				r.addStrokeSegment(current, start)
				current = start
			}
			finish()
		}
	}
	finish()
}

// addStrokeSegment appends the segment a-b, unless it is degenerate.
func (r *Rasteriser) addStrokeSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	l := d.Length()
	if l < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / l)
	r.segs = append(r.segs, strokeSegment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// strokeOpen appends the outline of an open polyline to r.outline.
// The polygon runs forward along the +N side, around the end cap, back
// along the -N side and around the start cap.  d is half the line width.
func (r *Rasteriser) strokeOpen(segs []strokeSegment, d float64) {
	if len(segs) == 0 {
		return
	}
	first := &segs[0]
	last := &segs[len(segs)-1]

	r.addCap(first.A, first.T.Mul(-1), d)

	skip := false
	for i := range segs {
		s := &segs[i]
		if !skip {
			r.outline = append(r.outline, s.A.Add(s.N.Mul(d)))
		}
		skip = false
		if i == len(segs)-1 {
			r.outline = append(r.outline, s.B.Add(s.N.Mul(d)))
			break
		}
		next := &segs[i+1]
		sin := cross(s.T, next.T)
		switch {
		case math.Abs(sin) < collinearityThreshold:
			r.outline = append(r.outline, s.B.Add(s.N.Mul(d)))
		case sin > 0: // +N is the inner side
			skip = r.addInnerCorner(s.B, s.T, next.T, s.N, next.N, d, true)
		default:
			r.outline = append(r.outline, s.B.Add(s.N.Mul(d)))
			r.addJoin(s.B, s.T, next.T, d, true)
		}
	}

	r.addCap(last.B, last.T, d)

	skip = false
	for i := len(segs) - 1; i >= 0; i-- {
		s := &segs[i]
		if !skip {
			r.outline = append(r.outline, s.B.Sub(s.N.Mul(d)))
		}
		skip = false
		if i == 0 {
			r.outline = append(r.outline, s.A.Sub(s.N.Mul(d)))
			break
		}
		prev := &segs[i-1]
		sin := cross(prev.T, s.T)
		switch {
		case math.Abs(sin) < collinearityThreshold:
			r.outline = append(r.outline, s.A.Sub(s.N.Mul(d)))
		case sin > 0: // -N is the outer side
			r.outline = append(r.outline, s.A.Sub(s.N.Mul(d)))
			r.addJoin(s.A, prev.T, s.T, d, false)
		default:
			skip = r.addInnerCorner(s.A, prev.T, s.T, prev.N, s.N, d, false)
		}
	}
}

// cross returns the z component of the cross product of a and b.
func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// addCap adds the cap at P.  T points away from the line.
func (r *Rasteriser) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.outline = append(r.outline, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))
	case graphics.LineCapRound:
		// half circle from +N through T to -N
		r.addArc(P, d, N, -math.Pi, true)
	}
	// butt caps need no extra points
}

// addInnerCorner handles the inner side of a corner at P.  Where the two
// offset lines intersect, the intersection replaces both offset points and
// the function returns true.  Otherwise both offset points are added.
func (r *Rasteriser) addInnerCorner(P, T1, T2, N1, N2 vec.Vec2, d float64, plusSide bool) bool {
	if pt, ok := innerIntersection(P, T1, T2, d, plusSide); ok {
		r.outline = append(r.outline, pt)
		return true
	}
	if plusSide {
		r.outline = append(r.outline, P.Add(N1.Mul(d)), P.Add(N2.Mul(d)))
	} else {
		r.outline = append(r.outline, P.Sub(N1.Mul(d)), P.Sub(N2.Mul(d)))
	}
	return false
}

// innerIntersection returns the point where the inner offset lines of a
// corner at P meet.
func innerIntersection(P, T1, T2 vec.Vec2, d float64, plusSide bool) (vec.Vec2, bool) {
	cos := T1.Dot(T2)
	if cos > 1-1e-9 {
		return vec.Vec2{}, false
	}
	half := math.Sqrt((1 + cos) / 2) // cos(θ/2)
	if half < 1e-9 {
		return vec.Vec2{}, false
	}

	dir := vec.Vec2{X: -T1.Y - T2.Y, Y: T1.X + T2.X} // N1 + N2
	if !plusSide {
		dir = dir.Mul(-1)
	}
	l := dir.Length()
	if l < 1e-9 {
		return vec.Vec2{}, false
	}
	return P.Add(dir.Mul(d / (l * half))), true
}

// addJoin adds the outer join geometry at P, where the tangent turns from
// T1 to T2.
func (r *Rasteriser) addJoin(P, T1, T2 vec.Vec2, d float64, plusSide bool) {
	cos := T1.Dot(T2)
	sin := cross(T1, T2)
	if math.Abs(sin) < collinearityThreshold {
		return
	}
	if cos < cuspCosineThreshold {
		r.addCap(P, T1, d)
		r.addCap(P, T2.Mul(-1), d)
		return
	}

	switch r.Join {
	case graphics.LineJoinMiter:
		// The miter length ratio is 1/sin(φ/2) where φ is the angle
		// between the segments; sin(φ/2) = cos(θ/2).
		half := math.Sqrt((1 + cos) / 2)
		if half > 0 && 1/half <= r.MiterLimit+1e-10 {
			dir := vec.Vec2{X: -T1.Y - T2.Y, Y: T1.X + T2.X}
			if !plusSide {
				dir = dir.Mul(-1)
			}
			if l := dir.Length(); l > zeroLengthThreshold {
				r.outline = append(r.outline, P.Add(dir.Mul(d/(l*half))))
			}
		}
		// beyond the miter limit this is a bevel join

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cos)))
		if plusSide {
			start := vec.Vec2{X: -T1.Y, Y: T1.X}
			if sin < 0 {
				angle = -angle
			}
			r.addArc(P, d, start, angle, false)
		} else {
			start := vec.Vec2{X: T2.Y, Y: -T2.X}
			if sin > 0 {
				angle = -angle
			}
			r.addArc(P, d, start, angle, false)
		}
	}
	// bevel joins need no extra points
}

// addArc appends points on the circle of the given radius around center.
// The arc starts in direction dir and sweeps by the given angle (positive
// is counter-clockwise in a y-up system).  The start point is only added
// if withStart is set.
func (r *Rasteriser) addArc(center vec.Vec2, radius float64, dir vec.Vec2, sweep float64, withStart bool) {
	devRadius := max(
		r.deviceLength(vec.Vec2{X: radius}),
		r.deviceLength(vec.Vec2{Y: radius}),
	)

	n := 1
	if devRadius >= r.Flatness {
		// a chord spanning angle α deviates from the circle by
		// radius·(1-cos(α/2))
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if step <= 0 || math.IsNaN(step) {
			step = math.Pi / 4
		}
		n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
	}

	i0 := 1
	if withStart {
		i0 = 0
	}
	for i := i0; i <= n; i++ {
		a := sweep * float64(i) / float64(n)
		c, s := math.Cos(a), math.Sin(a)
		r.outline = append(r.outline, center.Add(vec.Vec2{
			X: dir.X*c - dir.Y*s,
			Y: dir.X*s + dir.Y*c,
		}.Mul(radius)))
	}
}

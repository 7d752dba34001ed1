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

package testcases

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/inktrace"
)

var trailCases = []Scenario{
	{
		Name:     "slow_line",
		Width:    256,
		Height:   128,
		Touch:    true,
		Events:   touches(line(pt(16, 64), pt(240, 64), 9), 0, 200),
		Segments: 8,
		Strokes:  1,
	},
	{
		Name:     "fast_line",
		Width:    256,
		Height:   128,
		Touch:    true,
		Events:   touches(line(pt(16, 64), pt(240, 64), 9), 0, 16),
		Segments: 8,
		Strokes:  1,
	},
	{
		Name:     "accelerating",
		Width:    256,
		Height:   128,
		Touch:    true,
		Events:   touches(accelerating(pt(16, 64), 2, 11), 0, 16),
		Segments: 10,
		Strokes:  1,
	},
	{
		Name:     "circle",
		Width:    256,
		Height:   128,
		Touch:    true,
		Events:   touches(arc(pt(128, 64), 48, 0, 2*math.Pi, 33), 0, 30),
		Segments: 32,
		Strokes:  1,
	},
	{
		Name:   "zigzag",
		Width:  256,
		Height: 128,
		Touch:  true,
		Events: touches([]vec.Vec2{
			pt(16, 100), pt(48, 28), pt(80, 100), pt(112, 28),
			pt(144, 100), pt(176, 28), pt(208, 100), pt(240, 28),
		}, 0, 60),
		Segments: 7,
		Strokes:  1,
	},
}

// line returns n equally spaced samples from a to b, including both end
// points.
func line(a, b vec.Vec2, n int) []vec.Vec2 {
	res := make([]vec.Vec2, n)
	for i := range n {
		t := float64(i) / float64(n-1)
		res[i] = a.Add(b.Sub(a).Mul(t))
	}
	return res
}

// accelerating returns n horizontal samples starting at a, where the
// distance between consecutive samples grows linearly.
func accelerating(a vec.Vec2, step float64, n int) []vec.Vec2 {
	res := make([]vec.Vec2, n)
	for i := range n {
		res[i] = a.Add(vec.Vec2{X: step * float64(i*i)})
	}
	return res
}

// arc returns n samples on a circular arc.
func arc(c vec.Vec2, r, phi0, phi1 float64, n int) []vec.Vec2 {
	res := make([]vec.Vec2, n)
	for i := range n {
		phi := phi0 + (phi1-phi0)*float64(i)/float64(n-1)
		res[i] = c.Add(vec.Vec2{X: r * math.Cos(phi), Y: r * math.Sin(phi)})
	}
	return res
}

// moves returns mouse move events through the given viewport positions,
// dt milliseconds apart.  Page positions are offset by scroll.
func moves(pts []vec.Vec2, scroll vec.Vec2, t0, dt float64) []Event {
	res := make([]Event, len(pts))
	for i, p := range pts {
		res[i] = Event{
			Type:   Move,
			Time:   t0 + float64(i)*dt,
			Client: p,
			Page:   p.Add(scroll),
		}
	}
	return res
}

// touches returns single-finger touch events through the given positions,
// dt milliseconds apart.  The page is not scrolled.
func touches(pts []vec.Vec2, t0, dt float64) []Event {
	res := make([]Event, len(pts))
	for i, p := range pts {
		res[i] = Event{
			Type:    TouchMove,
			Time:    t0 + float64(i)*dt,
			Touches: []inktrace.Touch{{Client: p, Page: p}},
		}
	}
	return res
}

// seq concatenates event lists.
func seq(parts ...[]Event) []Event {
	var res []Event
	for _, p := range parts {
		res = append(res, p...)
	}
	return res
}

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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/inktrace"
)

var modeCases = []Scenario{
	{
		// The viewport becomes narrow in the middle of a stroke.
		Name:   "narrowing",
		Width:  800,
		Height: 200,
		Events: seq(
			moves(line(pt(50, 100), pt(350, 100), 5), vec.Vec2{}, 0, 50),
			[]Event{{Type: Resize, Time: 250, Width: 600}},
			moves(line(pt(50, 150), pt(350, 150), 5), vec.Vec2{}, 300, 50),
		),
		Segments: 8,
		Strokes:  2,
	},
	{
		Name:   "widening",
		Width:  600,
		Height: 200,
		Events: seq(
			moves(line(pt(50, 100), pt(350, 100), 5), vec.Vec2{}, 0, 50),
			[]Event{{Type: Resize, Time: 250, Width: 1000}},
			moves(line(pt(50, 150), pt(350, 150), 5), vec.Vec2{}, 300, 50),
		),
		Segments: 8,
		Strokes:  2,
	},
}

var resizeCases = []Scenario{
	{
		Name:      "grow",
		Width:     800,
		Height:    200,
		DocHeight: 300,
		Events: seq(
			moves(line(pt(50, 50), pt(750, 250), 8), vec.Vec2{}, 0, 40),
			[]Event{{Type: Resize, Time: 300, DocHeight: 600}},
			moves(line(pt(750, 250), pt(50, 550), 8), vec.Vec2{}, 320, 40),
		),
		Segments: 15,
		Strokes:  1,
	},
	{
		Name:      "shrink",
		Width:     800,
		Height:    200,
		DocHeight: 600,
		Events: seq(
			moves(line(pt(50, 550), pt(750, 50), 8), vec.Vec2{}, 0, 40),
			[]Event{{Type: Resize, Time: 300, DocHeight: 250}},
			moves(line(pt(750, 50), pt(50, 50), 8), vec.Vec2{}, 320, 40),
		),
		Segments: 15,
		Strokes:  1,
	},
	{
		Name:   "ratio_change",
		Width:  800,
		Height: 200,
		Events: seq(
			moves(line(pt(50, 50), pt(350, 150), 5), vec.Vec2{}, 0, 50),
			[]Event{{Type: Resize, Time: 250, Ratio: 2}},
			moves(line(pt(350, 150), pt(750, 50), 5), vec.Vec2{}, 300, 50),
		),
		Segments: 9,
		Strokes:  1,
	},
}

var scrollCases = []Scenario{
	{
		// The mouse stands still while the page scrolls.
		Name:      "reproject",
		Width:     800,
		Height:    200,
		DocHeight: 1000,
		Events: []Event{
			{Type: Move, Time: 0, Client: pt(100, 100), Page: pt(100, 100)},
			{Type: Scroll, Time: 16, ScrollY: 20},
			{Type: Scroll, Time: 32, ScrollY: 40},
			{Type: Scroll, Time: 48, ScrollY: 60},
			{Type: Scroll, Time: 64, ScrollY: 80},
		},
		Segments: 4,
		Strokes:  1,
	},
	{
		Name:      "move_then_scroll",
		Width:     800,
		Height:    200,
		DocHeight: 1000,
		Events: seq(
			moves(line(pt(100, 100), pt(300, 100), 5), vec.Vec2{}, 0, 30),
			[]Event{{Type: Scroll, Time: 150, ScrollY: 50}},
			moves(line(pt(300, 100), pt(500, 100), 5), pt(0, 50), 180, 30),
		),
		Segments: 10,
		Strokes:  1,
	},
	{
		Name:      "touch_no_reproject",
		Width:     256,
		Height:    256,
		DocHeight: 1000,
		Touch:     true,
		Events: seq(
			touches(line(pt(20, 128), pt(236, 128), 5), 0, 40),
			[]Event{{Type: Scroll, Time: 200, ScrollY: 30}},
		),
		Segments: 4,
		Strokes:  1,
	},
}

var touchCases = []Scenario{
	{
		Name:   "multitouch",
		Width:  256,
		Height: 128,
		Touch:  true,
		Events: seq(
			touches(line(pt(16, 40), pt(128, 40), 5), 0, 40),
			[]Event{{Type: TouchMove, Time: 200, Touches: []inktrace.Touch{
				{Client: pt(20, 100), Page: pt(20, 100)},
				{Client: pt(200, 100), Page: pt(200, 100)},
			}}},
			touches(line(pt(156, 40), pt(240, 100), 3), 240, 40),
		),
		Segments: 7,
		Strokes:  1,
	},
	{
		Name:   "lift",
		Width:  256,
		Height: 128,
		Touch:  true,
		Events: seq(
			touches(line(pt(16, 30), pt(240, 30), 5), 0, 40),
			[]Event{{Type: TouchEnd, Time: 200}},
			touches(line(pt(16, 64), pt(240, 64), 5), 300, 40),
			[]Event{{Type: TouchCancel, Time: 500}},
			touches(line(pt(16, 100), pt(240, 100), 3), 600, 40),
		),
		Segments: 10,
		Strokes:  3,
	},
	{
		Name:   "leave",
		Width:  800,
		Height: 200,
		Events: seq(
			moves(line(pt(50, 50), pt(750, 50), 5), vec.Vec2{}, 0, 50),
			[]Event{{Type: Leave, Time: 250}},
			moves(line(pt(50, 150), pt(750, 150), 5), vec.Vec2{}, 300, 50),
		),
		Segments: 8,
		Strokes:  2,
	},
}

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

// Command export replays all scenarios and writes the scenario
// definitions together with the resulting trail segments to JSON, for use
// by an external reference renderer.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/inktrace"
	"seehuhn.de/go/inktrace/testcases"
)

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	cfg := inktrace.DefaultConfig()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, sc := range testcases.All[category] {
			r, err := sc.Run(cfg)
			if err != nil {
				panic(err)
			}
			out.TestCases = append(out.TestCases, toJSON(category, &sc, r))
		}
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name        string            `json:"name"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	PixelWidth  int               `json:"pixel_width"`
	PixelHeight int               `json:"pixel_height"`
	Ratio       float64           `json:"ratio"`
	Color       string            `json:"color"`
	LineCap     string            `json:"line_cap"`
	LineJoin    string            `json:"line_join"`
	Events      []testcases.Event `json:"events"`
	Strokes     [][]jsonSegment   `json:"strokes"`
}

type jsonSegment struct {
	Pts   [][]float64 `json:"pts"` // start, control, end
	Width float64     `json:"width"`
	Time  float64     `json:"t"`
}

func toJSON(category string, sc *testcases.Scenario, r *inktrace.Renderer) jsonTestCase {
	cfg := r.Config()
	surf := r.Surface()
	jtc := jsonTestCase{
		Name:     category + "_" + sc.Name,
		Ratio:    surf.DevicePixelRatio(),
		Color:    inktrace.FormatColor(cfg.Color),
		LineCap:  cfg.Cap.String(),
		LineJoin: cfg.Join.String(),
		Events:   sc.Events,
	}
	jtc.Width, jtc.Height = surf.Size()
	jtc.PixelWidth, jtc.PixelHeight = surf.PixelSize()

	for _, stroke := range r.Journal().Strokes() {
		var segs []jsonSegment
		for _, s := range stroke {
			segs = append(segs, jsonSegment{
				Pts: [][]float64{
					{s.P0.X, s.P0.Y},
					{s.Ctrl.X, s.Ctrl.Y},
					{s.P1.X, s.P1.Y},
				},
				Width: s.Width,
				Time:  s.Time,
			})
		}
		jtc.Strokes = append(jtc.Strokes, segs)
	}
	return jtc
}

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

// Package testcases contains scripted event sequences for the ink trail
// renderer.  The scenarios are shared by the package tests, the JSON
// exporter and the reference image generator.
package testcases

import (
	"fmt"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/inktrace"
)

// Scenario is a page setup together with a sequence of host events.
type Scenario struct {
	Name string // lowercase a-z and _ only

	Width, Height       float64 // viewport size in logical pixels
	DocWidth, DocHeight float64 // document size, zero means viewport size
	Ratio               float64 // device pixel ratio, zero means 1
	Touch               bool    // touch capable device

	Events []Event

	Segments int // expected number of drawn segments
	Strokes  int // expected number of strokes
}

// Host returns a host in the initial state of the scenario.
func (s *Scenario) Host() *inktrace.StaticHost {
	h := &inktrace.StaticHost{Touch: s.Touch}
	h.SetViewport(s.Width, s.Height)
	if s.DocWidth > 0 || s.DocHeight > 0 {
		h.SetDocument(max(s.DocWidth, s.Width), max(s.DocHeight, s.Height))
	}
	h.Geom.DevicePixelRatio = s.Ratio
	if h.Geom.DevicePixelRatio == 0 {
		h.Geom.DevicePixelRatio = 1
	}
	return h
}

// Run creates a renderer for the scenario and replays all events.
func (s *Scenario) Run(cfg inktrace.Config) (*inktrace.Renderer, error) {
	p, err := NewPlayer(s.Host(), cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	for _, e := range s.Events {
		p.Play(e)
	}
	return p.Renderer, nil
}

// EventType identifies the kind of host event.
type EventType int

const (
	Move        EventType = iota // mouse move
	TouchMove                    // touch move
	Leave                        // pointer left the window
	TouchEnd                     // last finger lifted
	TouchCancel                  // touch interrupted
	Scroll                       // page scrolled
	Resize                       // viewport or document size changed
)

var eventNames = []string{"move", "touch", "leave", "touchend", "touchcancel", "scroll", "resize"}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return fmt.Sprintf("EventType(%d)", int(t))
	}
	return eventNames[t]
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (t EventType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(eventNames) {
		return nil, fmt.Errorf("invalid event type %d", int(t))
	}
	return []byte(eventNames[t]), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (t *EventType) UnmarshalText(text []byte) error {
	for i, name := range eventNames {
		if name == string(text) {
			*t = EventType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q", text)
}

// Event is a single host event.  Which fields are used depends on the
// type.
type Event struct {
	Type EventType `json:"type"`
	Time float64   `json:"t"` // milliseconds

	// Move
	Client vec.Vec2 `json:"client,omitzero"`
	Page   vec.Vec2 `json:"page,omitzero"`

	// TouchMove
	Touches []inktrace.Touch `json:"touches,omitempty"`

	// Scroll
	ScrollX float64 `json:"scroll_x,omitempty"`
	ScrollY float64 `json:"scroll_y,omitempty"`

	// Resize; zero values leave the corresponding setting unchanged
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	DocWidth  float64 `json:"doc_width,omitempty"`
	DocHeight float64 `json:"doc_height,omitempty"`
	Ratio     float64 `json:"ratio,omitempty"`
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

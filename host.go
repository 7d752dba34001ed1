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

import "seehuhn.de/go/geom/vec"

// Box holds the size measurements of a document element, in logical
// pixels.
type Box struct {
	ScrollWidth, ScrollHeight float64
	OffsetWidth, OffsetHeight float64
}

// Geometry describes the page layout at one moment.
type Geometry struct {
	ViewportWidth, ViewportHeight float64

	Body Box // the <body> element
	Root Box // the <html> element

	ScrollX, ScrollY float64

	DevicePixelRatio float64
}

// Host is the page which displays the trail.
type Host interface {
	// Geometry returns the current page layout.
	Geometry() Geometry

	// TouchCapable reports whether the device has a touch screen.
	TouchCapable() bool

	// Now returns the current time in milliseconds.  The clock must use
	// the same origin as the event timestamps.
	Now() float64
}

// Touch is a single point of contact of a touch event.
type Touch struct {
	Client vec.Vec2 `json:"client"` // relative to the viewport
	Page   vec.Vec2 `json:"page"`   // relative to the document
}

// StaticHost is a [Host] with fixed values, for tests and for replaying
// recorded events.
type StaticHost struct {
	Geom  Geometry
	Touch bool
	Clock float64
}

// Geometry implements the [Host] interface.
func (h *StaticHost) Geometry() Geometry {
	return h.Geom
}

// TouchCapable implements the [Host] interface.
func (h *StaticHost) TouchCapable() bool {
	return h.Touch
}

// Now implements the [Host] interface.
func (h *StaticHost) Now() float64 {
	return h.Clock
}

// SetViewport changes the viewport size.  The document is assumed to be
// exactly as large as the viewport.
func (h *StaticHost) SetViewport(width, height float64) {
	h.Geom.ViewportWidth = width
	h.Geom.ViewportHeight = height
	h.Geom.Root = Box{width, height, width, height}
	h.Geom.Body = h.Geom.Root
}

// SetDocument changes the document size.
func (h *StaticHost) SetDocument(width, height float64) {
	h.Geom.Root = Box{width, height, width, height}
	h.Geom.Body = h.Geom.Root
}

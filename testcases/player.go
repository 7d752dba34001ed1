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

import "seehuhn.de/go/inktrace"

// Player forwards events to a renderer, the way a browser page does.
type Player struct {
	Host     *inktrace.StaticHost
	Renderer *inktrace.Renderer
}

// NewPlayer creates a renderer for the given host.
func NewPlayer(h *inktrace.StaticHost, cfg inktrace.Config) (*Player, error) {
	r, err := inktrace.New(h, cfg)
	if err != nil {
		return nil, err
	}
	return &Player{Host: h, Renderer: r}, nil
}

// Play applies a single event.
func (p *Player) Play(e Event) {
	h := p.Host
	h.Clock = e.Time

	switch e.Type {
	case Move:
		p.Renderer.PointerMove(e.Client, e.Page, e.Time)
	case TouchMove:
		p.Renderer.TouchMove(e.Touches, e.Time)
	case Leave, TouchEnd, TouchCancel:
		p.Renderer.ResetContinuity()
	case Scroll:
		h.Geom.ScrollX = e.ScrollX
		h.Geom.ScrollY = e.ScrollY
		p.Renderer.ScrollReproject()
	case Resize:
		g := &h.Geom
		if e.Width > 0 || e.Height > 0 {
			docW := max(g.Root.ScrollWidth, g.ViewportWidth)
			docH := max(g.Root.ScrollHeight, g.ViewportHeight)
			if e.Width > 0 {
				g.ViewportWidth = e.Width
			}
			if e.Height > 0 {
				g.ViewportHeight = e.Height
			}
			h.SetDocument(max(docW, g.ViewportWidth), max(docH, g.ViewportHeight))
		}
		if e.DocWidth > 0 || e.DocHeight > 0 {
			w, hh := e.DocWidth, e.DocHeight
			if w <= 0 {
				w = g.Root.ScrollWidth
			}
			if hh <= 0 {
				hh = g.Root.ScrollHeight
			}
			h.SetDocument(w, hh)
		}
		if e.Ratio > 0 {
			g.DevicePixelRatio = e.Ratio
		}
		p.Renderer.Reconcile()
	}
}

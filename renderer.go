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

// Package inktrace draws a smoothed ink trail which follows the mouse
// pointer or a finger.
//
// The host page forwards position samples to a [Renderer].  Consecutive
// samples are joined by quadratic curves which run through the midpoints
// of the samples, using the samples themselves as control points.  The
// stroke width depends on the speed of the motion: fast motion draws thin
// lines.
//
// The renderer owns its drawing surface.  When the page geometry changes,
// [Renderer.Reconcile] reallocates the surface for the new size and
// device pixel ratio and copies the old content over.  On touch screens
// and narrow viewports the surface only covers the viewport and samples
// are given in viewport coordinates.  Otherwise the surface covers the
// whole document and samples are given in document coordinates.
package inktrace

import (
	"image"
	"math"

	"github.com/google/uuid"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/inktrace/surface"
)

// Mode describes how samples are interpreted.
type Mode int

const (
	// ModePointer is used on wide screens without touch support.  The
	// surface covers the whole document.
	ModePointer Mode = iota

	// ModeTouchOrNarrow is used on touch devices and narrow viewports.
	// The surface covers the viewport.
	ModeTouchOrNarrow
)

func (m Mode) String() string {
	switch m {
	case ModePointer:
		return "pointer"
	case ModeTouchOrNarrow:
		return "touch-or-narrow"
	default:
		return "invalid"
	}
}

// Continuity is the state needed to extend the current stroke.
type Continuity struct {
	Prev   vec.Vec2 // the most recent sample
	Mid    vec.Vec2 // the end point of the last segment, valid if HasMid
	HasMid bool
	Last   float64 // timestamp of Prev
}

const (
	// maxDimension limits the logical surface size in each direction.
	maxDimension = 32767

	// maxPixelRatio limits the device pixel ratio.
	maxPixelRatio = 8
)

// Renderer draws an ink trail onto a surface it owns.
//
// A Renderer is not safe for concurrent use.  All methods must be called
// from the goroutine which delivers host events.
type Renderer struct {
	host Host
	cfg  Config

	surf  *surface.Surface
	style surface.Style
	mode  Mode

	cont    Continuity
	hasCont bool

	lastClient    vec.Vec2
	hasLastClient bool

	strokeID uuid.UUID
	journal  *Journal

	seg path.Data
}

// New creates a renderer for the given host and sizes its surface.
func New(host Host, cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Renderer{
		host: host,
		cfg:  cfg,
		surf: surface.New(0, 0, 1),
		style: surface.Style{
			Color:    cfg.Color,
			Width:    cfg.WidthMax,
			Cap:      cfg.Cap,
			Join:     cfg.Join,
			Flatness: cfg.Flatness,
		},
		journal: newJournal(cfg.JournalSize),
	}
	r.mode = r.currentMode()
	r.surf.SetStyle(r.style)
	r.Reconcile()
	return r, nil
}

// Mode returns the current input mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Surface returns the drawing surface.  Callers must not draw on it.
func (r *Renderer) Surface() *surface.Surface {
	return r.surf
}

// Journal returns the record of drawn segments.
func (r *Renderer) Journal() *Journal {
	return r.journal
}

// Continuity returns the state of the current stroke.  The second return
// value is false if no stroke is in progress.
func (r *Renderer) Continuity() (Continuity, bool) {
	return r.cont, r.hasCont
}

// Config returns the configuration of the renderer.
func (r *Renderer) Config() Config {
	return r.cfg
}

func (r *Renderer) currentMode() Mode {
	if r.host.TouchCapable() || r.host.Geometry().ViewportWidth <= r.cfg.NarrowWidth {
		return ModeTouchOrNarrow
	}
	return ModePointer
}

// ModeChange re-evaluates the input mode.  If the mode changed, the
// current stroke is ended and true is returned.
func (r *Renderer) ModeChange() bool {
	mode := r.currentMode()
	if mode == r.mode {
		return false
	}
	Logger().Debug("inktrace: input mode changed", "from", r.mode, "to", mode)
	r.mode = mode
	r.ResetContinuity()
	return true
}

// targetSize returns the logical surface size for the current mode.
func (r *Renderer) targetSize(g Geometry) (int, int) {
	if r.mode == ModeTouchOrNarrow {
		return dimension(g.ViewportWidth), dimension(g.ViewportHeight)
	}
	w := max(g.Body.ScrollWidth, g.Body.OffsetWidth,
		g.Root.ScrollWidth, g.Root.OffsetWidth, g.ViewportWidth)
	h := max(g.Body.ScrollHeight, g.Body.OffsetHeight,
		g.Root.ScrollHeight, g.Root.OffsetHeight)
	return dimension(w), dimension(h)
}

// dimension converts a measurement to a surface size.
func dimension(x float64) int {
	switch {
	case !(x > 0):
		return 0
	case x >= maxDimension:
		return maxDimension
	default:
		return int(math.Ceil(x))
	}
}

// pixelRatio sanitises a device pixel ratio.
func pixelRatio(x float64) float64 {
	switch {
	case !(x >= 1):
		return 1
	case x > maxPixelRatio:
		return maxPixelRatio
	default:
		return x
	}
}

// Reconcile matches the surface to the page geometry.  The input mode is
// re-evaluated first.  If the logical size or the device pixel ratio
// changed, the surface is reallocated and the old pixels are copied to the
// top-left corner of the new surface, scaled by the change in pixel ratio
// so that they keep their logical position.  Afterwards the transformation
// maps logical to physical pixels and the stroke style is set.
//
// The return value indicates whether the surface was reallocated.
func (r *Renderer) Reconcile() bool {
	r.ModeChange()

	g := r.host.Geometry()
	w, h := r.targetSize(g)
	ratio := pixelRatio(g.DevicePixelRatio)

	oldW, oldH := r.surf.Size()
	oldRatio := r.surf.DevicePixelRatio()
	if w == oldW && h == oldH && ratio == oldRatio {
		return false
	}

	snap, err := r.surf.Snapshot()
	if err != nil {
		Logger().Debug("inktrace: nothing to preserve", "error", err)
	}

	r.surf.Resize(w, h, ratio)
	r.surf.SetTransform(matrix.Identity)
	switch {
	case snap == nil:
	case ratio == oldRatio:
		r.surf.PutImage(snap, image.Point{})
	default:
		// keep old content at the same logical position
		sw, sh := surface.PixelSize(oldW, oldH, ratio)
		r.surf.PutImageScaled(snap, image.Rect(0, 0, sw, sh))
	}
	r.surf.SetTransform(matrix.Scale(ratio, ratio))
	r.surf.SetStyle(r.style)

	pw, ph := r.surf.PixelSize()
	Logger().Debug("inktrace: surface resized",
		"width", w, "height", h, "ratio", ratio,
		"pixelWidth", pw, "pixelHeight", ph)
	return true
}

// ResetContinuity ends the current stroke.  The next sample starts a new
// stroke.
func (r *Renderer) ResetContinuity() {
	r.hasCont = false
	r.cont = Continuity{}
	r.hasLastClient = false
}

// RecordSample adds a sample to the trail.  The position p must be in
// viewport coordinates in [ModeTouchOrNarrow] and in document coordinates
// in [ModePointer].  The timestamp t is in milliseconds.
//
// The first sample of a stroke only records the position.  Every further
// sample draws a quadratic curve from the end of the previous segment
// (or from the first sample) to the midpoint between the previous and
// the new sample, with the previous sample as control point.  Samples with
// non-finite coordinates or timestamps are ignored.
func (r *Renderer) RecordSample(p vec.Vec2, t float64) {
	if !finite(p.X) || !finite(p.Y) || !finite(t) {
		return
	}
	if !r.hasCont {
		r.cont = Continuity{Prev: p, Last: t}
		r.hasCont = true
		r.strokeID = uuid.New()
		return
	}

	c := r.cont
	width := r.cfg.LineWidth(p.Sub(c.Prev).Length(), t-c.Last)
	mid := c.Prev.Add(p).Mul(0.5)

	start := c.Prev
	if c.HasMid {
		start = c.Mid
	}
	r.seg.Cmds = r.seg.Cmds[:0]
	r.seg.Coords = r.seg.Coords[:0]
	r.seg.MoveTo(start).QuadTo(c.Prev, mid)

	r.surf.SetLineWidth(width)
	r.surf.Stroke(&r.seg)
	r.journal.add(Segment{
		Stroke: r.strokeID,
		P0:     start,
		Ctrl:   c.Prev,
		P1:     mid,
		Width:  width,
		Time:   t,
	})

	r.cont = Continuity{Prev: p, Mid: mid, HasMid: true, Last: t}
}

// PointerMove handles a mouse move event.  The client position is
// relative to the viewport, the page position to the document.
func (r *Renderer) PointerMove(client, page vec.Vec2, t float64) {
	r.lastClient = client
	r.hasLastClient = true
	if r.mode == ModeTouchOrNarrow {
		r.RecordSample(client, t)
	} else {
		r.RecordSample(page, t)
	}
}

// TouchMove handles a touch move event.  Events with more than one point
// of contact are ignored.
func (r *Renderer) TouchMove(touches []Touch, t float64) {
	if len(touches) != 1 {
		return
	}
	r.PointerMove(touches[0].Client, touches[0].Page, t)
}

// ScrollReproject keeps the trail under a stationary mouse pointer while
// the page scrolls.  In [ModePointer], the surface is reconciled and the
// last known viewport position, converted to document coordinates, is
// recorded as a new sample.  The return value indicates whether a sample
// was recorded.
func (r *Renderer) ScrollReproject() bool {
	if r.mode != ModePointer {
		return false
	}
	r.Reconcile()
	if r.mode != ModePointer || !r.hasLastClient {
		return false
	}
	g := r.host.Geometry()
	p := r.lastClient.Add(vec.Vec2{X: g.ScrollX, Y: g.ScrollY})
	r.RecordSample(p, r.host.Now())
	return true
}

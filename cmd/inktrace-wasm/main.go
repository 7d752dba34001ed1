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

//go:build js && wasm

// Command inktrace-wasm runs the trail renderer in a web browser.
//
// The page must contain a <canvas id="creative-trace"> element which is
// positioned over the content.  The renderer draws into its own buffer and
// the buffer is copied to the canvas once per animation frame.  The
// surface follows window resizes, the load event and size changes of the
// document content.
package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	"syscall/js"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/inktrace"
)

const canvasID = "creative-trace"

// browserHost queries the page layout through the DOM.
type browserHost struct {
	win, doc js.Value
}

func (h browserHost) Geometry() inktrace.Geometry {
	box := func(el js.Value) inktrace.Box {
		if el.IsUndefined() || el.IsNull() {
			return inktrace.Box{}
		}
		return inktrace.Box{
			ScrollWidth:  el.Get("scrollWidth").Float(),
			ScrollHeight: el.Get("scrollHeight").Float(),
			OffsetWidth:  el.Get("offsetWidth").Float(),
			OffsetHeight: el.Get("offsetHeight").Float(),
		}
	}
	return inktrace.Geometry{
		ViewportWidth:    h.win.Get("innerWidth").Float(),
		ViewportHeight:   h.win.Get("innerHeight").Float(),
		Body:             box(h.doc.Get("body")),
		Root:             box(h.doc.Get("documentElement")),
		ScrollX:          h.win.Get("scrollX").Float(),
		ScrollY:          h.win.Get("scrollY").Float(),
		DevicePixelRatio: h.win.Get("devicePixelRatio").Float(),
	}
}

func (h browserHost) TouchCapable() bool {
	return js.Global().Get("Reflect").Call("has", h.win, "ontouchstart").Bool()
}

func (h browserHost) Now() float64 {
	return h.win.Get("performance").Call("now").Float()
}

// page connects a renderer to the canvas element.
type page struct {
	host   browserHost
	r      *inktrace.Renderer
	canvas js.Value
	ctx    js.Value

	dirty     bool
	present   coalescer
	scroll    coalescer
	reconcile coalescer

	nrgba *image.NRGBA
	buf   js.Value
}

func main() {
	inktrace.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	win := js.Global()
	doc := win.Get("document")
	canvas := doc.Call("getElementById", canvasID)
	if canvas.IsNull() {
		slog.Error("canvas element not found", "id", canvasID)
		return
	}

	host := browserHost{win: win, doc: doc}
	r, err := inktrace.New(host, inktrace.DefaultConfig())
	if err != nil {
		slog.Error("cannot create renderer", "error", err)
		return
	}
	p := &page{
		host:   host,
		r:      r,
		canvas: canvas,
		ctx:    canvas.Call("getContext", "2d"),
		dirty:  true,
	}
	p.listen()
	p.observe()
	p.schedule()

	for _, ms := range reconcileDelays {
		p.after(ms, p.doReconcile)
	}

	select {}
}

func (p *page) listen() {
	for _, s := range subscriptions {
		el := p.host.doc
		if s.target == targetWindow {
			el = p.host.win
		}
		on(el, s.event, s.passive, p.handler(s.action))
	}
}

func (p *page) handler(a action) func(e js.Value) {
	switch a {
	case actPointerMove:
		return func(e js.Value) {
			client := vec.Vec2{X: e.Get("clientX").Float(), Y: e.Get("clientY").Float()}
			pg := vec.Vec2{X: e.Get("pageX").Float(), Y: e.Get("pageY").Float()}
			p.r.PointerMove(client, pg, e.Get("timeStamp").Float())
			p.schedule()
		}
	case actTouchMove:
		return func(e js.Value) {
			list := e.Get("touches")
			touches := make([]inktrace.Touch, list.Length())
			for i := range touches {
				t := list.Index(i)
				touches[i] = inktrace.Touch{
					Client: vec.Vec2{X: t.Get("clientX").Float(), Y: t.Get("clientY").Float()},
					Page:   vec.Vec2{X: t.Get("pageX").Float(), Y: t.Get("pageY").Float()},
				}
			}
			p.r.TouchMove(touches, e.Get("timeStamp").Float())
			p.schedule()
		}
	case actReset:
		return func(js.Value) { p.r.ResetContinuity() }
	case actReconcileLater:
		return func(js.Value) { p.after(resizeDelay, p.doReconcile) }
	case actReconcileFrame:
		return func(js.Value) { p.reconcileFrame() }
	case actScroll:
		return func(js.Value) {
			if !p.scroll.request() {
				return
			}
			p.frame(func() {
				p.scroll.done()
				p.r.ScrollReproject()
				p.schedule()
			})
		}
	default:
		panic("unknown action")
	}
}

// observe reconciles the surface whenever the size of the document
// content changes.
func (p *page) observe() {
	ctor := js.Global().Get("ResizeObserver")
	if ctor.IsUndefined() {
		slog.Warn("ResizeObserver not available, content changes are not tracked")
		return
	}
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		p.reconcileFrame()
		return nil
	})
	obs := ctor.New(cb)
	for _, name := range observed {
		if el := p.host.doc.Get(name); !el.IsUndefined() && !el.IsNull() {
			obs.Call("observe", el)
		}
	}
}

func (p *page) reconcileFrame() {
	if !p.reconcile.request() {
		return
	}
	p.frame(func() {
		p.reconcile.done()
		p.doReconcile()
	})
}

func (p *page) doReconcile() {
	p.r.Reconcile()
	p.schedule()
}

// schedule requests a copy of the surface to the canvas with the next
// animation frame.
func (p *page) schedule() {
	p.dirty = true
	if !p.present.request() {
		return
	}
	p.frame(func() {
		p.present.done()
		p.draw()
	})
}

// draw copies the surface to the canvas element.
func (p *page) draw() {
	if !p.dirty {
		return
	}
	p.dirty = false

	surf := p.r.Surface()
	pw, ph := surf.PixelSize()
	w, h := surf.Size()
	if p.canvas.Get("width").Int() != pw || p.canvas.Get("height").Int() != ph {
		p.canvas.Set("width", pw)
		p.canvas.Set("height", ph)
		style := p.canvas.Get("style")
		style.Set("width", fmt.Sprintf("%dpx", w))
		style.Set("height", fmt.Sprintf("%dpx", h))
	}
	if pw == 0 || ph == 0 {
		return
	}

	// ImageData expects straight alpha
	p.nrgba = surf.NRGBA(p.nrgba)
	n := len(p.nrgba.Pix)
	if p.buf.IsUndefined() || p.buf.Get("length").Int() != n {
		p.buf = js.Global().Get("Uint8ClampedArray").New(n)
	}
	js.CopyBytesToJS(p.buf, p.nrgba.Pix)
	data := js.Global().Get("ImageData").New(p.buf, pw, ph)
	p.ctx.Call("putImageData", data, 0, 0)
}

func (p *page) frame(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	p.host.win.Call("requestAnimationFrame", cb)
}

func (p *page) after(ms int, fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	p.host.win.Call("setTimeout", cb, ms)
}

func on(el js.Value, event string, passive bool, fn func(e js.Value)) {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		fn(args[0])
		return nil
	})
	opts := map[string]any{"passive": passive}
	el.Call("addEventListener", event, cb, opts)
}

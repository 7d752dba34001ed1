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

import (
	"bytes"
	"image/color"
	"log/slog"
	"math"
	"strings"
	"testing"

	"seehuhn.de/go/geom/vec"
)

// wideHost returns a host with a desktop-sized viewport and no touch
// support, so that renderers start in pointer mode.
func wideHost() *StaticHost {
	h := &StaticHost{}
	h.SetViewport(1024, 768)
	h.Geom.DevicePixelRatio = 1
	return h
}

func newRenderer(t *testing.T, h Host) *Renderer {
	t.Helper()
	r, err := New(h, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestScenarioFirstSegment(t *testing.T) {
	r := newRenderer(t, wideHost())

	r.RecordSample(vec.Vec2{X: 0, Y: 0}, 0)
	if n := r.Journal().Len(); n != 0 {
		t.Fatalf("first sample drew %d segments", n)
	}
	c, ok := r.Continuity()
	if !ok || c.Prev != (vec.Vec2{}) || c.HasMid {
		t.Fatalf("continuity after first sample = %v, %t", c, ok)
	}

	r.RecordSample(vec.Vec2{X: 100, Y: 0}, 100)
	segs := r.Journal().Segments()
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	s := segs[0]
	if s.P0 != (vec.Vec2{}) || s.Ctrl != (vec.Vec2{}) || s.P1 != (vec.Vec2{X: 50, Y: 0}) {
		t.Errorf("segment = %v %v %v, want (0,0) (0,0) (50,0)", s.P0, s.Ctrl, s.P1)
	}
	if math.Abs(s.Width-1.1) > 1e-9 {
		t.Errorf("width = %g, want 1.1", s.Width)
	}

	c, _ = r.Continuity()
	want := Continuity{Prev: vec.Vec2{X: 100}, Mid: vec.Vec2{X: 50}, HasMid: true, Last: 100}
	if c != want {
		t.Errorf("continuity = %v, want %v", c, want)
	}
}

func TestMidpointChaining(t *testing.T) {
	r := newRenderer(t, wideHost())
	pts := []vec.Vec2{{X: 10, Y: 10}, {X: 30, Y: 10}, {X: 30, Y: 40}, {X: 60, Y: 40}}
	for i, p := range pts {
		r.RecordSample(p, float64(20*i))
	}

	segs := r.Journal().Segments()
	if len(segs) != len(pts)-1 {
		t.Fatalf("got %d segments, want %d", len(segs), len(pts)-1)
	}
	for i, s := range segs {
		mid := pts[i].Add(pts[i+1]).Mul(0.5)
		if s.Ctrl != pts[i] || s.P1 != mid {
			t.Errorf("segment %d: ctrl %v end %v, want %v %v", i, s.Ctrl, s.P1, pts[i], mid)
		}
		if i > 0 && s.P0 != segs[i-1].P1 {
			t.Errorf("segment %d starts at %v, previous ended at %v", i, s.P0, segs[i-1].P1)
		}
		if s.Stroke != segs[0].Stroke {
			t.Errorf("segment %d belongs to a different stroke", i)
		}
	}
}

func TestRecordSampleDraws(t *testing.T) {
	r := newRenderer(t, wideHost())
	r.RecordSample(vec.Vec2{X: 10, Y: 20}, 0)
	r.RecordSample(vec.Vec2{X: 110, Y: 20}, 1000) // slow, full width

	img := r.Surface().Image()
	got := img.RGBAAt(30, 20)
	if got.B < 250 || got.A < 250 {
		t.Errorf("pixel on the trail = %v, want opaque blue", got)
	}
	if got := img.RGBAAt(30, 40); got.A != 0 {
		t.Errorf("pixel away from the trail = %v, want transparent", got)
	}
}

func TestRecordSampleIgnoresNonFinite(t *testing.T) {
	r := newRenderer(t, wideHost())
	r.RecordSample(vec.Vec2{X: math.NaN()}, 0)
	if _, ok := r.Continuity(); ok {
		t.Fatal("NaN sample started a stroke")
	}
	r.RecordSample(vec.Vec2{X: 1, Y: 1}, 0)
	r.RecordSample(vec.Vec2{X: 5, Y: math.Inf(1)}, 10)
	r.RecordSample(vec.Vec2{X: 5, Y: 5}, math.Inf(-1))
	if n := r.Journal().Len(); n != 0 {
		t.Errorf("non-finite samples drew %d segments", n)
	}
}

func TestResetContinuity(t *testing.T) {
	r := newRenderer(t, wideHost())
	r.RecordSample(vec.Vec2{X: 10, Y: 10}, 0)
	r.RecordSample(vec.Vec2{X: 20, Y: 10}, 20)
	r.ResetContinuity()
	if _, ok := r.Continuity(); ok {
		t.Fatal("continuity present after reset")
	}

	r.RecordSample(vec.Vec2{X: 200, Y: 200}, 40)
	if n := r.Journal().Len(); n != 1 {
		t.Fatalf("sample after reset drew a segment, journal has %d", n)
	}
	r.RecordSample(vec.Vec2{X: 210, Y: 200}, 60)

	strokes := r.Journal().Strokes()
	if len(strokes) != 2 {
		t.Fatalf("got %d strokes, want 2", len(strokes))
	}
	if s := strokes[1][0]; s.P0 != (vec.Vec2{X: 200, Y: 200}) {
		t.Errorf("second stroke starts at %v", s.P0)
	}
}

func TestModeSwitchBreaksStroke(t *testing.T) {
	h := wideHost()
	r := newRenderer(t, h)
	if r.Mode() != ModePointer {
		t.Fatalf("mode = %v, want pointer", r.Mode())
	}

	r.RecordSample(vec.Vec2{X: 10, Y: 10}, 0)
	r.RecordSample(vec.Vec2{X: 40, Y: 10}, 20)

	h.SetViewport(700, 768)
	if !r.ModeChange() {
		t.Fatal("ModeChange() = false after narrowing the viewport")
	}
	if r.Mode() != ModeTouchOrNarrow {
		t.Errorf("mode = %v, want touch-or-narrow", r.Mode())
	}
	if _, ok := r.Continuity(); ok {
		t.Error("continuity present after a mode change")
	}
	if r.ModeChange() {
		t.Error("second ModeChange() = true")
	}

	r.RecordSample(vec.Vec2{X: 500, Y: 300}, 40)
	if n := r.Journal().Len(); n != 1 {
		t.Errorf("first sample after the mode change drew, journal has %d", n)
	}
	r.RecordSample(vec.Vec2{X: 510, Y: 300}, 60)
	for _, s := range r.Journal().Segments() {
		if s.Ctrl == (vec.Vec2{X: 40, Y: 10}) {
			t.Errorf("segment %v connects the two modes", s)
		}
	}
}

func TestModeBoundary(t *testing.T) {
	tests := []struct {
		width float64
		touch bool
		want  Mode
	}{
		{1024, false, ModePointer},
		{769, false, ModePointer},
		{768, false, ModeTouchOrNarrow},
		{320, false, ModeTouchOrNarrow},
		{1920, true, ModeTouchOrNarrow},
	}
	for _, tt := range tests {
		h := &StaticHost{Touch: tt.touch}
		h.SetViewport(tt.width, 600)
		r := newRenderer(t, h)
		if r.Mode() != tt.want {
			t.Errorf("width %g, touch %t: mode %v, want %v", tt.width, tt.touch, r.Mode(), tt.want)
		}
	}
}

func TestReconcileTargetSize(t *testing.T) {
	h := wideHost()
	h.Geom.Body = Box{ScrollWidth: 1000, ScrollHeight: 3000.5, OffsetWidth: 1000, OffsetHeight: 2000}
	h.Geom.Root = Box{ScrollWidth: 1010, ScrollHeight: 2500, OffsetWidth: 900, OffsetHeight: 2900}
	r := newRenderer(t, h)

	w, hh := r.Surface().Size()
	if w != 1024 || hh != 3001 {
		t.Errorf("pointer mode size = %dx%d, want 1024x3001", w, hh)
	}

	h.Touch = true
	if !r.Reconcile() {
		t.Fatal("Reconcile() = false after switching to touch")
	}
	w, hh = r.Surface().Size()
	if w != 1024 || hh != 768 {
		t.Errorf("touch mode size = %dx%d, want 1024x768", w, hh)
	}
}

func TestReconcileClampsGeometry(t *testing.T) {
	h := &StaticHost{}
	h.Geom.ViewportWidth = -20
	h.Geom.ViewportHeight = math.NaN()
	h.Geom.DevicePixelRatio = math.Inf(1)
	r := newRenderer(t, h)

	w, hh := r.Surface().Size()
	if w != 0 || hh != 0 {
		t.Errorf("size = %dx%d, want 0x0", w, hh)
	}
	if r.Reconcile() {
		t.Error("Reconcile() = true for unchanged geometry")
	}
	r.RecordSample(vec.Vec2{X: 1, Y: 1}, 0)
	r.RecordSample(vec.Vec2{X: 2, Y: 2}, 10) // draws onto an empty surface
}

func TestReconcileUnchanged(t *testing.T) {
	h := &StaticHost{}
	h.SetViewport(800, 600)
	h.Geom.DevicePixelRatio = 2
	r := newRenderer(t, h)

	pw, ph := r.Surface().PixelSize()
	if pw != 1600 || ph != 1200 {
		t.Fatalf("pixel size = %dx%d, want 1600x1200", pw, ph)
	}

	r.RecordSample(vec.Vec2{X: 100, Y: 100}, 0)
	r.RecordSample(vec.Vec2{X: 300, Y: 150}, 200)
	img := r.Surface().Image()
	before := bytes.Clone(img.Pix)

	if r.Reconcile() {
		t.Error("Reconcile() = true for unchanged geometry")
	}
	if r.Surface().Image() != img {
		t.Error("surface was reallocated")
	}
	if !bytes.Equal(img.Pix, before) {
		t.Error("pixels changed")
	}
}

func TestReconcilePreservesContent(t *testing.T) {
	for _, ratio := range []float64{1, 1.5, 2} {
		h := wideHost()
		h.SetDocument(1024, 1000)
		h.Geom.DevicePixelRatio = ratio
		r := newRenderer(t, h)

		r.RecordSample(vec.Vec2{X: 50, Y: 50}, 0)
		r.RecordSample(vec.Vec2{X: 250, Y: 90}, 400)
		r.RecordSample(vec.Vec2{X: 400, Y: 300}, 800)
		old, err := r.Surface().Snapshot()
		if err != nil {
			t.Fatal(err)
		}

		for _, height := range []float64{2000, 500} {
			h.SetDocument(1024, height)
			if !r.Reconcile() {
				t.Fatalf("ratio %g: Reconcile() = false for height %g", ratio, height)
			}
			img := r.Surface().Image()
			b := img.Bounds().Intersect(old.Bounds())
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					if img.RGBAAt(x, y) != old.RGBAAt(x, y) {
						t.Fatalf("ratio %g, height %g: pixel (%d,%d) = %v, want %v",
							ratio, height, x, y, img.RGBAAt(x, y), old.RGBAAt(x, y))
					}
				}
			}
			old, _ = r.Surface().Snapshot()
		}

		// drawing continues in logical coordinates at the right scale
		st := r.Surface().Style()
		if st.Color != color.Color(DefaultConfig().Color) || st.Cap != DefaultConfig().Cap {
			t.Errorf("ratio %g: style not restored: %v", ratio, st)
		}
		r.RecordSample(vec.Vec2{X: 400, Y: 400}, 2000)
		r.RecordSample(vec.Vec2{X: 500, Y: 400}, 3000)
		px := int(450 * ratio)
		py := int(400 * ratio)
		if got := r.Surface().Image().RGBAAt(px, py); got.A < 250 {
			t.Errorf("ratio %g: pixel (%d,%d) = %v after resize, want ink", ratio, px, py, got)
		}
	}
}

// drawBar draws a slow, wide horizontal trail along y=400 from x=100
// to x=400 and returns logical points inside and outside the ink.
func drawBar(r *Renderer) (inside, outside []vec.Vec2) {
	r.RecordSample(vec.Vec2{X: 100, Y: 400}, 0)
	r.RecordSample(vec.Vec2{X: 300, Y: 400}, 1000)
	r.RecordSample(vec.Vec2{X: 500, Y: 400}, 2000)
	inside = []vec.Vec2{{X: 150, Y: 400}, {X: 250, Y: 400}, {X: 350, Y: 400}}
	outside = []vec.Vec2{{X: 250, Y: 380}, {X: 250, Y: 420}, {X: 600, Y: 400}}
	return inside, outside
}

// checkInk verifies the surface pixels at the given logical points.
func checkInk(t *testing.T, r *Renderer, inside, outside []vec.Vec2) {
	t.Helper()
	ratio := r.Surface().DevicePixelRatio()
	img := r.Surface().Image()
	for _, p := range inside {
		px, py := int(p.X*ratio), int(p.Y*ratio)
		if got := img.RGBAAt(px, py); got.A < 250 || got.B < 250 {
			t.Errorf("ratio %g: logical %v (pixel %d,%d) = %v, want ink", ratio, p, px, py, got)
		}
	}
	for _, p := range outside {
		px, py := int(p.X*ratio), int(p.Y*ratio)
		if got := img.RGBAAt(px, py); got.A != 0 {
			t.Errorf("ratio %g: logical %v (pixel %d,%d) = %v, want transparent", ratio, p, px, py, got)
		}
	}
}

func TestReconcileRatioChange(t *testing.T) {
	tests := []struct {
		from, to float64
	}{
		{1, 2},
		{2, 1},
		{1, 1.5},
		{2, 3},
	}
	for _, tt := range tests {
		h := wideHost()
		h.SetDocument(1024, 800)
		h.Geom.DevicePixelRatio = tt.from
		r := newRenderer(t, h)
		inside, outside := drawBar(r)
		checkInk(t, r, inside, outside)

		h.Geom.DevicePixelRatio = tt.to
		if !r.Reconcile() {
			t.Fatalf("%g -> %g: Reconcile() = false", tt.from, tt.to)
		}
		pw, ph := r.Surface().PixelSize()
		wantW, wantH := int(1024*tt.to), int(800*tt.to)
		if pw != wantW || ph != wantH {
			t.Errorf("%g -> %g: pixel size %dx%d, want %dx%d", tt.from, tt.to, pw, ph, wantW, wantH)
		}
		w, hh := r.Surface().Size()
		if w != 1024 || hh != 800 {
			t.Errorf("%g -> %g: logical size changed to %dx%d", tt.from, tt.to, w, hh)
		}
		checkInk(t, r, inside, outside)
	}
}

func TestReconcileWidthChange(t *testing.T) {
	h := wideHost()
	h.SetDocument(1024, 800)
	h.Geom.DevicePixelRatio = 1.5
	r := newRenderer(t, h)
	inside, outside := drawBar(r)

	for _, step := range []struct {
		name string
		set  func()
		w, h int
	}{
		{"wider", func() { h.SetDocument(1400, 800) }, 1400, 800},
		{"narrower", func() { h.SetViewport(900, 768) }, 900, 768},
	} {
		old, err := r.Surface().Snapshot()
		if err != nil {
			t.Fatal(err)
		}
		step.set()
		if !r.Reconcile() {
			t.Fatalf("%s: Reconcile() = false", step.name)
		}
		if w, hh := r.Surface().Size(); w != step.w || hh != step.h {
			t.Errorf("%s: size %dx%d, want %dx%d", step.name, w, hh, step.w, step.h)
		}
		img := r.Surface().Image()
		b := img.Bounds().Intersect(old.Bounds())
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if img.RGBAAt(x, y) != old.RGBAAt(x, y) {
					t.Fatalf("%s: pixel (%d,%d) = %v, want %v", step.name, x, y, img.RGBAAt(x, y), old.RGBAAt(x, y))
				}
			}
		}
		checkInk(t, r, inside, outside)
	}
}

func TestTouchMoveSingleTouch(t *testing.T) {
	h := &StaticHost{Touch: true}
	h.SetViewport(400, 800)
	r := newRenderer(t, h)

	one := func(x, y float64) []Touch {
		return []Touch{{Client: vec.Vec2{X: x, Y: y}, Page: vec.Vec2{X: x, Y: y + 1000}}}
	}
	r.TouchMove(one(10, 10), 0)
	c, ok := r.Continuity()
	if !ok || c.Prev != (vec.Vec2{X: 10, Y: 10}) {
		t.Fatalf("touch mode recorded %v, want client coordinates", c.Prev)
	}

	two := append(one(50, 50), one(60, 60)...)
	r.TouchMove(two, 10)
	r.TouchMove(nil, 20)
	if c2, _ := r.Continuity(); c2 != c {
		t.Errorf("multi-touch changed continuity from %v to %v", c, c2)
	}
	if n := r.Journal().Len(); n != 0 {
		t.Errorf("multi-touch drew %d segments", n)
	}

	r.TouchMove(one(30, 10), 30)
	if n := r.Journal().Len(); n != 1 {
		t.Errorf("got %d segments, want 1", n)
	}
}

func TestPointerMoveUsesPage(t *testing.T) {
	r := newRenderer(t, wideHost())
	r.PointerMove(vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 10, Y: 510}, 0)
	c, _ := r.Continuity()
	if c.Prev != (vec.Vec2{X: 10, Y: 510}) {
		t.Errorf("pointer mode recorded %v, want page coordinates", c.Prev)
	}
}

func TestScrollReproject(t *testing.T) {
	h := wideHost()
	h.SetDocument(1024, 4000)
	r := newRenderer(t, h)

	if r.ScrollReproject() {
		t.Error("ScrollReproject() = true without a known position")
	}

	r.PointerMove(vec.Vec2{X: 100, Y: 100}, vec.Vec2{X: 100, Y: 100}, 0)
	h.Geom.ScrollY = 50
	h.Clock = 50
	if !r.ScrollReproject() {
		t.Fatal("ScrollReproject() = false")
	}
	segs := r.Journal().Segments()
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	if want := (vec.Vec2{X: 100, Y: 125}); segs[0].P1 != want {
		t.Errorf("segment ends at %v, want %v", segs[0].P1, want)
	}
	if segs[0].Time != 50 {
		t.Errorf("segment time = %g, want 50", segs[0].Time)
	}
}

func TestScrollReprojectTouch(t *testing.T) {
	h := &StaticHost{Touch: true}
	h.SetViewport(400, 800)
	r := newRenderer(t, h)

	r.PointerMove(vec.Vec2{X: 100, Y: 100}, vec.Vec2{X: 100, Y: 100}, 0)
	h.Geom.ScrollY = 50
	h.Clock = 50
	before, _ := r.Continuity()
	if r.ScrollReproject() {
		t.Error("ScrollReproject() = true in touch mode")
	}
	if after, _ := r.Continuity(); after != before {
		t.Errorf("continuity changed from %v to %v", before, after)
	}
	if n := r.Journal().Len(); n != 0 {
		t.Errorf("got %d segments, want 0", n)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpeedMax = cfg.SpeedMin
	if _, err := New(wideHost(), cfg); err == nil {
		t.Error("New accepted an empty speed range")
	}
}

func TestJournalDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JournalSize = 0
	r, err := New(wideHost(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	r.RecordSample(vec.Vec2{X: 10, Y: 10}, 0)
	r.RecordSample(vec.Vec2{X: 20, Y: 10}, 20)
	if r.Journal().Len() != 0 || r.Journal().Dropped() != 1 {
		t.Errorf("journal: len %d, dropped %d", r.Journal().Len(), r.Journal().Dropped())
	}
}

func TestLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	h := wideHost()
	r := newRenderer(t, h)
	h.SetViewport(500, 500)
	r.Reconcile()

	out := buf.String()
	for _, msg := range []string{"surface resized", "input mode changed", "nothing to preserve"} {
		if !strings.Contains(out, msg) {
			t.Errorf("log output does not mention %q:\n%s", msg, out)
		}
	}
}

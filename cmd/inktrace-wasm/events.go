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

package main

// action is what the page does in response to a DOM event.
type action int

const (
	actPointerMove    action = iota // record a mouse position
	actTouchMove                    // record a single-finger position
	actReset                        // end the current stroke
	actReconcileLater               // reconcile after resizeDelay
	actReconcileFrame               // reconcile with the next animation frame
	actScroll                       // reproject with the next animation frame
)

// target is the DOM object a listener is attached to.
type target int

const (
	targetDocument target = iota
	targetWindow
)

type subscription struct {
	target  target
	event   string
	passive bool
	action  action
}

// subscriptions lists the DOM events the page listens to.  Passive
// listeners never call preventDefault, so the browser can scroll without
// waiting for them.
var subscriptions = []subscription{
	{targetDocument, "mousemove", false, actPointerMove},
	{targetDocument, "mouseleave", false, actReset},
	{targetDocument, "touchmove", true, actTouchMove},
	{targetDocument, "touchend", false, actReset},
	{targetDocument, "touchcancel", false, actReset},
	{targetWindow, "resize", false, actReconcileLater},
	{targetWindow, "scroll", true, actScroll},
	{targetWindow, "load", false, actReconcileFrame},
}

// observed names the document properties holding the elements whose size
// changes trigger a reconcile.
var observed = []string{"documentElement", "body"}

// reconcileDelays are the times, in milliseconds after start-up, at which
// the surface is matched to content that is still loading.
var reconcileDelays = []int{100, 500, 1500}

// resizeDelay is the delay in milliseconds between a window resize and
// the reconcile.
const resizeDelay = 100

// coalescer merges requests made before the next animation frame.
type coalescer struct {
	pending bool
}

// request reports whether a new animation frame must be requested.
func (c *coalescer) request() bool {
	if c.pending {
		return false
	}
	c.pending = true
	return true
}

// done is called from the animation frame callback.
func (c *coalescer) done() {
	c.pending = false
}

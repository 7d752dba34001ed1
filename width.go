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

import "math"

// LineWidth maps the distance covered between two samples, and the time
// in milliseconds it took, to a stroke width.  Elapsed times below
// MinElapsed (including zero, negative and NaN values) are replaced by
// MinElapsed.  The result lies in [WidthMin, WidthMax] and does not
// increase with speed.
func (c Config) LineWidth(distance, elapsed float64) float64 {
	if !(elapsed >= c.MinElapsed) {
		elapsed = c.MinElapsed
	}
	speed := distance / elapsed
	t := (speed - c.SpeedMin) / (c.SpeedMax - c.SpeedMin)
	switch {
	case math.IsNaN(t) || t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	return c.WidthMax - t*(c.WidthMax-c.WidthMin)
}

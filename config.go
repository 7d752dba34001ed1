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
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"seehuhn.de/go/pdf/graphics"
)

// Config holds the constants of an ink trail.  A Config is passed by value
// to [New] and is not changed afterwards.
type Config struct {
	// Color is the stroke color.
	Color color.NRGBA

	// WidthMin and WidthMax bound the stroke width, in logical pixels.
	// Fast motion draws thin lines.
	WidthMin, WidthMax float64

	// SpeedMin and SpeedMax delimit the speed range, in logical pixels per
	// millisecond, over which the width changes.
	SpeedMin, SpeedMax float64

	// NarrowWidth is the largest viewport width, in logical pixels, which
	// still counts as a narrow screen.
	NarrowWidth float64

	// MinElapsed is the lower bound for the time between two samples, in
	// milliseconds.
	MinElapsed float64

	Cap  graphics.LineCapStyle
	Join graphics.LineJoinStyle

	// Flatness is the curve approximation tolerance in physical pixels.
	Flatness float64

	// JournalSize is the number of segments kept in the journal.
	// Zero disables the journal.
	JournalSize int
}

// DefaultConfig returns the settings of the original page.
func DefaultConfig() Config {
	return Config{
		Color:       color.NRGBA{B: 0xFF, A: 0xFF},
		WidthMin:    0.6,
		WidthMax:    6,
		SpeedMin:    0.02,
		SpeedMax:    1.1,
		NarrowWidth: 768,
		MinElapsed:  16,
		Cap:         graphics.LineCapRound,
		Join:        graphics.LineJoinRound,
		Flatness:    0.25,
		JournalSize: 4096,
	}
}

var errInvalidConfig = errors.New("invalid config")

// Validate checks that all values are usable.
func (c Config) Validate() error {
	switch {
	case !finite(c.WidthMin) || !finite(c.WidthMax) || c.WidthMin <= 0 || c.WidthMax < c.WidthMin:
		return fmt.Errorf("%w: width range [%g, %g]", errInvalidConfig, c.WidthMin, c.WidthMax)
	case !finite(c.SpeedMin) || !finite(c.SpeedMax) || c.SpeedMin < 0 || c.SpeedMax <= c.SpeedMin:
		return fmt.Errorf("%w: speed range [%g, %g]", errInvalidConfig, c.SpeedMin, c.SpeedMax)
	case !finite(c.NarrowWidth) || c.NarrowWidth < 0:
		return fmt.Errorf("%w: narrow width %g", errInvalidConfig, c.NarrowWidth)
	case !finite(c.MinElapsed) || c.MinElapsed <= 0:
		return fmt.Errorf("%w: minimum elapsed time %g", errInvalidConfig, c.MinElapsed)
	case !finite(c.Flatness) || c.Flatness <= 0:
		return fmt.Errorf("%w: flatness %g", errInvalidConfig, c.Flatness)
	case c.JournalSize < 0:
		return fmt.Errorf("%w: journal size %d", errInvalidConfig, c.JournalSize)
	case c.Cap > graphics.LineCapSquare:
		return fmt.Errorf("%w: line cap %d", errInvalidConfig, c.Cap)
	case c.Join > graphics.LineJoinBevel:
		return fmt.Errorf("%w: line join %d", errInvalidConfig, c.Join)
	}
	return nil
}

// configFile is the TOML representation of a Config.
type configFile struct {
	Color       string  `toml:"color"`
	WidthMin    float64 `toml:"width_min"`
	WidthMax    float64 `toml:"width_max"`
	SpeedMin    float64 `toml:"speed_min"`
	SpeedMax    float64 `toml:"speed_max"`
	NarrowWidth float64 `toml:"narrow_width"`
	MinElapsed  float64 `toml:"min_elapsed"`
	LineCap     string  `toml:"line_cap"`
	LineJoin    string  `toml:"line_join"`
	Flatness    float64 `toml:"flatness"`
	JournalSize int     `toml:"journal_size"`
}

var (
	capNames  = []string{"butt", "round", "square"}
	joinNames = []string{"miter", "round", "bevel"}
)

// LoadConfig reads a TOML document and applies it on top of
// [DefaultConfig].  Keys which are not present keep their default values.
//
// Example:
//
//	color = "#ff0080"
//	width_max = 4.0
//	line_cap = "butt"
func LoadConfig(r io.Reader) (Config, error) {
	def := DefaultConfig()
	f := configFile{
		Color:       FormatColor(def.Color),
		WidthMin:    def.WidthMin,
		WidthMax:    def.WidthMax,
		SpeedMin:    def.SpeedMin,
		SpeedMax:    def.SpeedMax,
		NarrowWidth: def.NarrowWidth,
		MinElapsed:  def.MinElapsed,
		LineCap:     capNames[def.Cap],
		LineJoin:    joinNames[def.Join],
		Flatness:    def.Flatness,
		JournalSize: def.JournalSize,
	}

	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return Config{}, fmt.Errorf("inktrace: reading config: %w", err)
	}

	col, err := ParseColor(f.Color)
	if err != nil {
		return Config{}, fmt.Errorf("inktrace: reading config: %w", err)
	}
	lineCap := indexOf(capNames, f.LineCap)
	if lineCap < 0 {
		return Config{}, fmt.Errorf("inktrace: reading config: %w: line cap %q", errInvalidConfig, f.LineCap)
	}
	lineJoin := indexOf(joinNames, f.LineJoin)
	if lineJoin < 0 {
		return Config{}, fmt.Errorf("inktrace: reading config: %w: line join %q", errInvalidConfig, f.LineJoin)
	}

	c := Config{
		Color:       col,
		WidthMin:    f.WidthMin,
		WidthMax:    f.WidthMax,
		SpeedMin:    f.SpeedMin,
		SpeedMax:    f.SpeedMax,
		NarrowWidth: f.NarrowWidth,
		MinElapsed:  f.MinElapsed,
		Cap:         graphics.LineCapStyle(lineCap),
		Join:        graphics.LineJoinStyle(lineJoin),
		Flatness:    f.Flatness,
		JournalSize: f.JournalSize,
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("inktrace: reading config: %w", err)
	}
	return c, nil
}

func indexOf(names []string, s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if name == s {
			return i
		}
	}
	return -1
}

// ParseColor parses a color of the form "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.NRGBA{}, fmt.Errorf("%w: color %q", errInvalidConfig, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: color %q", errInvalidConfig, s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FormatColor is the inverse of [ParseColor].  The alpha component is
// omitted for opaque colors.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

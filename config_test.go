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
	"image/color"
	"strings"
	"testing"

	"seehuhn.de/go/pdf/graphics"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.WidthMin = 0 }},
		{"inverted widths", func(c *Config) { c.WidthMax = c.WidthMin / 2 }},
		{"empty speed range", func(c *Config) { c.SpeedMax = c.SpeedMin }},
		{"negative speed", func(c *Config) { c.SpeedMin = -1 }},
		{"zero elapsed floor", func(c *Config) { c.MinElapsed = 0 }},
		{"zero flatness", func(c *Config) { c.Flatness = 0 }},
		{"negative journal", func(c *Config) { c.JournalSize = -1 }},
		{"bad cap", func(c *Config) { c.Cap = graphics.LineCapSquare + 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			if err := c.Validate(); !errors.Is(err, errInvalidConfig) {
				t.Errorf("Validate() = %v, want errInvalidConfig", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	in := `
color = "#ff0080"
width_max = 4.0
line_cap = "butt"
`
	cfg, err := LoadConfig(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	want.Color = color.NRGBA{R: 0xFF, B: 0x80, A: 0xFF}
	want.WidthMax = 4
	want.Cap = graphics.LineCapButt
	if cfg != want {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig(\"\") = %+v, want the defaults", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"syntax", "width_max = "},
		{"unknown key", "colour = \"#000000\""},
		{"bad color", "color = \"blue\""},
		{"bad cap", "line_cap = \"pointy\""},
		{"bad join", "line_join = \"mitre\""},
		{"invalid range", "width_min = 10"},
		{"wrong type", "width_max = \"wide\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(strings.NewReader(tt.in)); err == nil {
				t.Errorf("LoadConfig(%q) succeeded", tt.in)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#0000FF", color.NRGBA{B: 0xFF, A: 0xFF}, true},
		{"#12345678", color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0x78}, true},
		{" #abcdef ", color.NRGBA{R: 0xAB, G: 0xCD, B: 0xEF, A: 0xFF}, true},
		{"0000FF", color.NRGBA{}, false},
		{"#00F", color.NRGBA{}, false},
		{"#00000g", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseColor(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if tt.ok {
			back, _ := ParseColor(FormatColor(got))
			if back != got {
				t.Errorf("FormatColor(%v) = %q does not parse back", got, FormatColor(got))
			}
		}
	}
}

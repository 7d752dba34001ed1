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

package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// BenchmarkRasteriserDot paints a round dot by stroking a single point.
func BenchmarkRasteriserDot(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasteriser(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			c := float64(size) / 2
			dot := (&path.Data{}).MoveTo(vec.Vec2{X: c, Y: c}).LineTo(vec.Vec2{X: c, Y: c})

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.Width = float64(size) * 0.9
				r.Cap = graphics.LineCapRound
				r.Stroke(dot, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, v := range coverage {
						row[i] = uint8(v * 255)
					}
				})
			}
		})
	}
}

// BenchmarkVectorDot paints the same dot with x/image/vector, for
// comparison.
func BenchmarkVectorDot(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})

			c := float32(size) / 2
			radius := float32(size) * 0.45
			const k = 0.5522847498 // cubic approximation of a quarter circle
			kr := k * radius

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				r.MoveTo(c, c-radius)
				r.CubeTo(c+kr, c-radius, c+radius, c-kr, c+radius, c)
				r.CubeTo(c+radius, c+kr, c+kr, c+radius, c, c+radius)
				r.CubeTo(c-kr, c+radius, c-radius, c+kr, c-radius, c)
				r.CubeTo(c-radius, c-kr, c-kr, c-radius, c, c-radius)
				r.ClosePath()
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkTrailSegment measures the steady state cost of one ink trail
// segment, a short quadratic curve with round caps.
func BenchmarkTrailSegment(b *testing.B) {
	clip := rect.Rect{URx: 1600, URy: 1200}
	r := NewRasteriser(clip)
	r.Cap = graphics.LineCapRound
	r.Join = graphics.LineJoinRound

	segs := make([]*path.Data, 64)
	for i := range segs {
		a := float64(i) * 2 * math.Pi / float64(len(segs))
		p0 := vec.Vec2{X: 800 + 300*math.Cos(a), Y: 600 + 300*math.Sin(a)}
		p1 := p0.Add(vec.Vec2{X: 12 * math.Cos(a+1), Y: 12 * math.Sin(a+1)})
		p2 := p1.Add(vec.Vec2{X: 12 * math.Cos(a+1.3), Y: 12 * math.Sin(a+1.3)})
		segs[i] = (&path.Data{}).MoveTo(p0).QuadTo(p1, p2)
	}
	emit := func(y, xMin int, coverage []float32) {}

	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		r.Width = 0.6 + float64(i%10)*0.54
		r.Stroke(segs[i%len(segs)], emit)
	}
}

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

// Package surface implements the pixel buffer an ink trail is drawn on.
//
// A [Surface] behaves like an HTML canvas element with a 2D context: it
// has a size in logical pixels, a backing buffer of physical pixels, a
// current transformation and a current stroke style.  Changing the size
// reallocates the backing buffer, which clears the pixels and resets the
// transformation and the style.  Callers which need the old content or
// state must save it first and restore it afterwards.
package surface

import (
	"errors"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/inktrace/raster"
)

// ErrEmpty is returned by [Surface.Snapshot] when the surface has no
// pixels.
var ErrEmpty = errors.New("surface: zero-area surface")

// Style describes how paths are stroked.
type Style struct {
	Color color.Color
	Width float64 // in user space units
	Cap   graphics.LineCapStyle
	Join  graphics.LineJoinStyle

	// Flatness is the curve approximation tolerance in physical pixels.
	// Zero selects the rasteriser default.
	Flatness float64
}

// DefaultStyle is the style of a freshly allocated surface.
var DefaultStyle = Style{
	Color: color.Black,
	Width: 1,
	Cap:   graphics.LineCapButt,
	Join:  graphics.LineJoinMiter,
}

// Surface is a drawing surface with separate logical and physical sizes.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	width, height int // logical size
	ratio         float64
	img           *image.RGBA

	ctm   matrix.Matrix
	style Style

	r *raster.Rasteriser
}

// New allocates a surface of the given logical size.  The backing buffer
// has floor(size*ratio) pixels in each direction.  Negative sizes are
// treated as zero and ratios below 1 as 1.
func New(width, height int, ratio float64) *Surface {
	s := &Surface{r: raster.NewRasteriser(rect.Rect{})}
	s.Resize(width, height, ratio)
	return s
}

// Resize reallocates the backing buffer for a new logical size and pixel
// ratio.  All pixels are cleared to transparent, the transformation is
// reset to the identity and the style to [DefaultStyle].
func (s *Surface) Resize(width, height int, ratio float64) {
	if !(ratio >= 1) || math.IsInf(ratio, 0) {
		ratio = 1
	}
	s.width = max(width, 0)
	s.height = max(height, 0)
	s.ratio = ratio

	pw, ph := PixelSize(s.width, s.height, ratio)
	s.img = image.NewRGBA(image.Rect(0, 0, pw, ph))
	s.ctm = matrix.Identity
	s.style = DefaultStyle
}

// PixelSize returns the backing buffer size for a logical size.
func PixelSize(width, height int, ratio float64) (int, int) {
	return int(math.Floor(float64(width) * ratio)), int(math.Floor(float64(height) * ratio))
}

// Size returns the logical size of the surface.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// PixelSize returns the size of the backing buffer.
func (s *Surface) PixelSize() (width, height int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// DevicePixelRatio returns the number of physical pixels per logical pixel.
func (s *Surface) DevicePixelRatio() float64 {
	return s.ratio
}

// Image returns the backing buffer.  The image is replaced by every call
// to Resize.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// NRGBA copies the pixels to an image with non-premultiplied alpha, the
// layout used by HTML ImageData.  dst is reused if it has the right size.
func (s *Surface) NRGBA(dst *image.NRGBA) *image.NRGBA {
	b := s.img.Bounds()
	if dst == nil || dst.Bounds() != b {
		dst = image.NewNRGBA(b)
	}
	draw.Draw(dst, b, s.img, b.Min, draw.Src)
	return dst
}

// Snapshot returns a copy of all pixels.
func (s *Surface) Snapshot() (*image.RGBA, error) {
	b := s.img.Bounds()
	if b.Empty() {
		return nil, ErrEmpty
	}
	snap := image.NewRGBA(b)
	draw.Draw(snap, b, s.img, b.Min, draw.Src)
	return snap, nil
}

// PutImage copies img to the backing buffer with its top-left corner at
// the physical pixel at.  Like putImageData, this ignores the current
// transformation and replaces pixels instead of blending.  Parts which
// fall outside the buffer are dropped.
func (s *Surface) PutImage(img image.Image, at image.Point) {
	draw.Copy(s.img, at, img, img.Bounds(), draw.Src, nil)
}

// PutImageScaled scales img to fill the physical rectangle dr and
// copies the result to the backing buffer, replacing the pixels there.
// Like PutImage, this ignores the current transformation.
func (s *Surface) PutImageScaled(img image.Image, dr image.Rectangle) {
	if dr.Size() == img.Bounds().Size() {
		draw.Copy(s.img, dr.Min, img, img.Bounds(), draw.Src, nil)
		return
	}
	draw.ApproxBiLinear.Scale(s.img, dr, img, img.Bounds(), draw.Src, nil)
}

// Transform returns the current transformation from user space to
// physical pixels.
func (s *Surface) Transform() matrix.Matrix {
	return s.ctm
}

// SetTransform replaces the current transformation.
func (s *Surface) SetTransform(m matrix.Matrix) {
	s.ctm = m
}

// Style returns the current stroke style.
func (s *Surface) Style() Style {
	return s.style
}

// SetStyle replaces the current stroke style.
func (s *Surface) SetStyle(st Style) {
	s.style = st
}

// SetLineWidth changes the line width of the current style.
func (s *Surface) SetLineWidth(w float64) {
	s.style.Width = w
}

// Stroke strokes p, given in user space, with the current style and
// composites the result onto the buffer using source-over blending.
func (s *Surface) Stroke(p *path.Data) {
	if s.img.Bounds().Empty() || !(s.style.Width > 0) || s.style.Color == nil {
		return
	}
	b := s.img.Bounds()
	s.r.Reset(rect.Rect{URx: float64(b.Dx()), URy: float64(b.Dy())})
	s.r.CTM = s.ctm
	s.r.Width = s.style.Width
	s.r.Cap = s.style.Cap
	s.r.Join = s.style.Join
	if s.style.Flatness > 0 {
		s.r.Flatness = s.style.Flatness
	}

	sr, sg, sb, sa := s.style.Color.RGBA()
	s.r.Stroke(p, func(y, xMin int, coverage []float32) {
		row := s.img.Pix[y*s.img.Stride+4*xMin:]
		for i, c := range coverage {
			m := uint32(c*0xffff + 0.5)
			inv := 0xffff - sa*m/0xffff
			px := row[4*i : 4*i+4 : 4*i+4]
			px[0] = over(px[0], sr, m, inv)
			px[1] = over(px[1], sg, m, inv)
			px[2] = over(px[2], sb, m, inv)
			px[3] = over(px[3], sa, m, inv)
		}
	})
}

// over blends one premultiplied channel: src·m + dst·inv, in 16 bit
// precision.
func over(dst uint8, src, m, inv uint32) uint8 {
	return uint8((uint32(dst)*0x101*inv/0xffff + src*m/0xffff) >> 8)
}

// Clear sets all pixels to transparent.
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

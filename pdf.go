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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"
)

// PDFOptions controls the output of [Journal.WritePDF].
type PDFOptions struct {
	// Width and Height give the page size in logical pixels.  One PDF unit
	// corresponds to one logical pixel.
	Width, Height float64

	// Paper and Ink are gray levels between 0 (black) and 1 (white).
	Paper, Ink float64

	Config Config // line cap and line join
}

// Gray returns the luminance of c, for use as [PDFOptions.Ink].
func Gray(c color.NRGBA) float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
}

// defaultPDFOptions returns options for a page which just holds the
// journal: dark ink on white paper, in the default style.
func (j *Journal) defaultPDFOptions() *PDFOptions {
	cfg := DefaultConfig()
	opt := &PDFOptions{Paper: 1, Ink: Gray(cfg.Color), Config: cfg}
	for s := range j.All() {
		pad := s.Width / 2
		for _, p := range []vec.Vec2{s.P0, s.Ctrl, s.P1} {
			opt.Width = max(opt.Width, math.Ceil(p.X+pad))
			opt.Height = max(opt.Height, math.Ceil(p.Y+pad))
		}
	}
	return opt
}

// WritePDF writes the segments of the journal to a single-page PDF file.
// Each segment is stroked with its own width.  If opt is nil, the page
// extends from the origin to just past the bottom-right-most segment and
// the trail is drawn in the default style.
func (j *Journal) WritePDF(fname string, opt *PDFOptions) error {
	if opt == nil {
		opt = j.defaultPDFOptions()
	}
	if !(opt.Width > 0 && opt.Height > 0) {
		return errors.New("inktrace: empty PDF page")
	}
	paper := &pdf.Rectangle{URx: opt.Width, URy: opt.Height}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(pdfcolor.DeviceGray(opt.Paper))
	page.Rectangle(0, 0, opt.Width, opt.Height)
	page.Fill()

	// PDF origin is bottom-left, the surface origin is top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, opt.Height})

	page.SetStrokeColor(pdfcolor.DeviceGray(opt.Ink))
	page.SetLineCap(opt.Config.Cap)
	page.SetLineJoin(opt.Config.Join)

	seg := &path.Data{}
	for s := range j.All() {
		seg.Cmds = seg.Cmds[:0]
		seg.Coords = seg.Coords[:0]
		seg.MoveTo(s.P0).QuadTo(s.Ctrl, s.P1)

		// PDF has no quadratic curves
		page.SetLineWidth(s.Width)
		for cmd, pts := range seg.Iter().ToCubic() {
			switch cmd {
			case path.CmdMoveTo:
				page.MoveTo(pts[0].X, pts[0].Y)
			case path.CmdCubeTo:
				page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			}
		}
		page.Stroke()
	}

	return page.Close()
}

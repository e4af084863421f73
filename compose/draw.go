// seehuhn.de/go/certpdf - generate PDF certificates from layout templates
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

package compose

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"
	"golang.org/x/text/language"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/certpdf/canvas"
	"seehuhn.de/go/certpdf/certificate"
	"seehuhn.de/go/certpdf/fontcache"
	"seehuhn.de/go/certpdf/imageload"
	"seehuhn.de/go/certpdf/layout"
	"seehuhn.de/go/certpdf/textdir"
)

// margin is the minimal distance between text and the page edges.
const margin = 10

// ascent approximates the ascent of a font, as a fraction of the font size.
const ascent = 0.75

// boldOffsets are the displacements used to simulate bold text.
var boldOffsets = [][2]float64{{0, 0}, {0.5, 0}, {0, 0.5}, {0.5, 0.5}}

// Colors of the programmatic background.
var (
	paperColor  = canvas.Color{R: 0xfd, G: 0xfb, B: 0xf7}
	borderColor = canvas.Color{R: 0xc9, G: 0xa9, B: 0x61}
)

// defaultImageBox is the size of images and QR codes with no size given.
var defaultImageBox = layout.Box{Width: 100, Height: 100}

// page holds the state of one render call.
type page struct {
	ctx    context.Context
	g      *Generator
	doc    canvas.Document
	width  float64
	height float64
	locale language.Tag
	logger *slog.Logger

	base  canvas.Font
	fonts map[string]canvas.Font

	nextImage int
}

// font returns the font for the given family and weight, embedding it on
// first use.
func (pg *page) font(family, weight string) canvas.Font {
	key := pg.g.fonts.Filename(family, weight)
	if F, ok := pg.fonts[key]; ok {
		return F
	}
	F := pg.g.fonts.Load(pg.doc, family, weight)
	if F.Standard && pg.base.Name != "" {
		F = pg.base
	}
	pg.fonts[key] = F
	return F
}

// drawText draws text at the position given by p, which uses top-down
// coordinates.  The return value reports whether anything was drawn.
func (pg *page) drawText(text string, p *layout.Placeholder) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	x := layout.Clamp(p.X, 0, pg.width)
	y := layout.Clamp(p.Y, 0, pg.height)
	F := pg.font(p.FontFamily, p.FontWeight)

	visual := textdir.ProcessWithLogger(text, pg.logger)
	w := pg.doc.TextWidth(visual, F, p.FontSize)

	switch p.Align {
	case layout.Center:
		x -= w / 2
	case layout.Right:
		x -= w
	}
	if maxX := pg.width - margin - w; maxX < margin {
		x = margin
	} else {
		x = layout.Clamp(x, margin, maxX)
	}
	pdfY := layout.Clamp(pg.height-y-p.FontSize*ascent, margin, pg.height-margin)

	col := canvas.Black
	if r, g, b, ok := layout.ParseColor(p.Color); ok {
		col = canvas.Color{R: r, G: g, B: b}
	}

	if fontcache.IsBold(p.FontWeight) {
		for _, d := range boldOffsets {
			pg.doc.DrawText(visual, x+d[0], pdfY+d[1], F, p.FontSize, col)
		}
	} else {
		pg.doc.DrawText(visual, x, pdfY, F, p.FontSize, col)
	}
	return true
}

// toPDF converts a box in top-down template coordinates into a PDF
// rectangle.
func (pg *page) toPDF(box layout.Box) rect.Rect {
	return rect.Rect{
		LLx: box.X,
		LLy: pg.height - box.Y - box.Height,
		URx: box.X + box.Width,
		URy: pg.height - box.Y,
	}
}

// embedImage adds a normalized image to the document.
func (pg *page) embedImage(img *imageload.Image) (canvas.Image, error) {
	pg.nextImage++
	name := "image" + strconv.Itoa(pg.nextImage)
	return pg.doc.EmbedImage(name, img.Data, img.Format)
}

// background draws the background image, or the programmatic background
// if no image is configured or the image cannot be used.
func (pg *page) background(src string) {
	if src != "" {
		img, err := pg.g.images.Load(pg.ctx, src)
		if err == nil {
			var ref canvas.Image
			ref, err = pg.embedImage(img)
			if err == nil {
				pg.doc.DrawImage(ref, rect.Rect{URx: pg.width, URy: pg.height})
				return
			}
		}
		pg.logger.Warn("background image not available, using plain background",
			"src", src, "error", err)
	}

	pg.doc.FillRect(rect.Rect{URx: pg.width, URy: pg.height}, paperColor)
	for _, b := range []struct{ inset, lineWidth float64 }{{20, 3}, {30, 1}} {
		if pg.width <= 2*b.inset || pg.height <= 2*b.inset {
			continue
		}
		box := rect.Rect{
			LLx: b.inset,
			LLy: b.inset,
			URx: pg.width - b.inset,
			URy: pg.height - b.inset,
		}
		pg.doc.StrokeRect(box, borderColor, b.lineWidth)
	}
}

// drawFields draws the four standard fields.
func (pg *page) drawFields(p *certificate.Placeholders, v *values) bool {
	fields := []struct {
		name     string
		slot     certificate.Slot
		defaultY float64
		value    string
	}{
		{"studentName", p.StudentName, layout.StudentNameY, v.studentName},
		{"courseName", p.CourseName, layout.CourseNameY, v.courseName},
		{"issuedDate", p.IssuedDate, layout.IssuedDateY, v.issuedDate},
		{"certificateNumber", p.CertificateNumber, layout.CertificateNumberY, v.number},
	}

	drawn := false
	for _, f := range fields {
		if f.slot.IsNull() {
			continue
		}
		ph := layout.Normalize(f.slot.Raw, pg.width, pg.height, f.defaultY, false)
		text := f.value
		if ph.Text != nil && *ph.Text != "" {
			text = *ph.Text
		}
		if pg.drawText(text, ph) {
			drawn = true
		} else {
			pg.logger.Debug("field has no text", "field", f.name)
		}
	}
	return drawn
}

// drawCustomText draws the free-form text placeholders.
func (pg *page) drawCustomText(slots []certificate.Slot) bool {
	drawn := false
	for _, slot := range slots {
		ph := layout.Normalize(slot.Raw, pg.width, pg.height, pg.height/2, true)
		if ph == nil || ph.Text == nil {
			continue
		}
		if pg.drawText(*ph.Text, ph) {
			drawn = true
		}
	}
	return drawn
}

// drawImages draws the auxiliary images.  Images which cannot be loaded
// are skipped.
func (pg *page) drawImages(slots []certificate.Slot) bool {
	drawn := false
	for i, slot := range slots {
		if slot.Raw == nil {
			continue
		}
		src := slot.Raw.StringValue("src")
		if src == "" {
			src = slot.Raw.StringValue("url")
		}
		box, ok := layout.NormalizeBox(slot.Raw, pg.width, pg.height, defaultImageBox)
		if src == "" || !ok {
			pg.logger.Warn("skipping image placeholder", "index", i, "src", src)
			continue
		}

		img, err := pg.g.images.Load(pg.ctx, src)
		if err != nil {
			pg.logger.Warn("image not available", "index", i, "src", src, "error", err)
			continue
		}
		ref, err := pg.embedImage(img)
		if err != nil {
			pg.logger.Warn("cannot embed image", "index", i, "src", src, "error", err)
			continue
		}
		pg.doc.DrawImage(ref, pg.toPDF(box))
		drawn = true
	}
	return drawn
}

// drawQRCode draws a QR code linking to the verification page of the
// certificate.
func (pg *page) drawQRCode(slot certificate.Slot, number string) {
	if slot.Raw == nil || pg.g.verifyURL == "" || number == "" {
		return
	}
	def := defaultImageBox
	def.X = pg.width - 40 - def.Width
	def.Y = pg.height - 40 - def.Height
	box, ok := layout.NormalizeBox(slot.Raw, pg.width, pg.height, def)
	if !ok {
		return
	}

	link := pg.g.verifyURL + url.PathEscape(number)
	data, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err == nil {
		var img *imageload.Image
		img, err = imageload.Normalize(data)
		if err == nil {
			var ref canvas.Image
			ref, err = pg.embedImage(img)
			if err == nil {
				pg.doc.DrawImage(ref, pg.toPDF(box))
				return
			}
		}
	}
	pg.logger.Warn("cannot draw QR code", "url", link, "error", err)
}

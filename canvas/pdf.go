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

package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xdg-go/stringprep"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

const standardFontName = "Helvetica"

// Options control the creation of a [PDF] document.
type Options struct {
	// CreationDate is recorded in the document information dictionary.
	// The zero value uses the current time, which makes the output
	// non-reproducible.
	CreationDate time.Time

	// OwnerPassword, if set, encrypts the document so that it can be
	// viewed and printed, but not modified without the password.
	OwnerPassword string

	// NoCompression disables compression of content streams.
	NoCompression bool
}

// PDF is a [Document] which produces a PDF file.
//
// A PDF must not be used concurrently from more than one goroutine.
type PDF struct {
	f             *gofpdf.Fpdf
	width, height float64

	// toPage maps PDF user space (origin bottom-left) to the top-left
	// origin used by gofpdf.
	toPage matrix.Matrix

	toWinAnsi func(string) string
	nextImage int
	err       error
}

// New creates a PDF document with one page of the given size in points.
func New(width, height float64, opt *Options) (*PDF, error) {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return nil, fmt.Errorf("canvas: invalid page size %gx%g", width, height)
	}
	if opt == nil {
		opt = &Options{}
	}

	f := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	f.SetMargins(0, 0, 0)
	f.SetAutoPageBreak(false, 0)
	f.SetCompression(!opt.NoCompression)
	f.SetCatalogSort(true)
	if !opt.CreationDate.IsZero() {
		f.SetCreationDate(opt.CreationDate)
	}
	if opt.OwnerPassword != "" {
		pw, err := stringprep.SASLprep.Prepare(opt.OwnerPassword)
		if err != nil {
			return nil, fmt.Errorf("canvas: owner password: %w", err)
		}
		f.SetProtection(gofpdf.CnProtectPrint|gofpdf.CnProtectCopy, "", pw)
	}
	f.AddPage()
	if err := f.Error(); err != nil {
		return nil, fmt.Errorf("canvas: %w", err)
	}

	return &PDF{
		f:         f,
		width:     width,
		height:    height,
		toPage:    matrix.Matrix{1, 0, 0, -1, 0, height},
		toWinAnsi: f.UnicodeTranslatorFromDescriptor(""),
	}, nil
}

// PageSize implements the [Document] interface.
func (p *PDF) PageSize() (float64, float64) {
	return p.width, p.height
}

// EmbedFont implements the [Document] interface.
//
// A font which gofpdf cannot parse returns an error and leaves the document
// usable.
func (p *PDF) EmbedFont(name string, data []byte) (font Font, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("canvas: font %q: %v", name, r)
		}
		if err != nil {
			p.f.ClearError()
		}
	}()

	p.f.AddUTF8FontFromBytes(name, "", data)
	if e := p.f.Error(); e != nil {
		return Font{}, fmt.Errorf("canvas: font %q: %w", name, e)
	}
	// gofpdf silently skips fonts it cannot parse
	if desc := p.f.GetFontDesc(name, ""); desc.Ascent == 0 && desc.Descent == 0 {
		return Font{}, fmt.Errorf("canvas: font %q: %w", name, errNotEmbedded)
	}
	return Font{Name: name}, nil
}

// StandardFont implements the [Document] interface.
func (p *PDF) StandardFont() Font {
	return Font{Name: standardFontName, Standard: true}
}

// EmbedImage implements the [Document] interface.
func (p *PDF) EmbedImage(name string, data []byte, format ImageFormat) (img Image, err error) {
	if format != PNG && format != JPEG {
		return Image{}, ErrUnsupportedImage
	}

	p.nextImage++
	key := fmt.Sprintf("img%d-%s", p.nextImage, name)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("canvas: image %q: %v", name, r)
		}
		if err != nil {
			p.f.ClearError()
		}
	}()

	opt := gofpdf.ImageOptions{ImageType: string(format)}
	info := p.f.RegisterImageOptionsReader(key, opt, bytes.NewReader(data))
	if e := p.f.Error(); e != nil {
		return Image{}, fmt.Errorf("canvas: image %q: %w", name, e)
	}
	if info == nil {
		return Image{}, fmt.Errorf("canvas: image %q: not registered", name)
	}
	return Image{
		Name:   key,
		Format: format,
		Width:  info.Width(),
		Height: info.Height(),
	}, nil
}

func (p *PDF) setFont(font Font, size float64) {
	if font.Name == "" {
		font = p.StandardFont()
	}
	p.f.SetFont(font.Name, "", size)
}

func (p *PDF) encode(text string, font Font) string {
	if font.Standard || font.Name == "" {
		return p.toWinAnsi(text)
	}
	// gofpdf only handles the basic multilingual plane
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return '?'
		}
		return r
	}, text)
}

// apply maps a point from PDF user space to gofpdf page space.
func (p *PDF) apply(x, y float64) (float64, float64) {
	m := p.toPage
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// topLeft returns the gofpdf position and size of r.
func (p *PDF) topLeft(r rect.Rect) (x, y, w, h float64) {
	x, y = p.apply(r.LLx, r.URy)
	return x, y, r.Dx(), r.Dy()
}

// DrawText implements the [Document] interface.
func (p *PDF) DrawText(text string, x, y float64, font Font, size float64, col Color) {
	p.setFont(font, size)
	p.f.SetTextColor(int(col.R), int(col.G), int(col.B))
	px, py := p.apply(x, y)
	p.f.Text(px, py, p.encode(text, font))
}

// TextWidth implements the [Document] interface.
func (p *PDF) TextWidth(text string, font Font, size float64) float64 {
	p.setFont(font, size)
	return p.f.GetStringWidth(p.encode(text, font))
}

// FillRect implements the [Document] interface.
func (p *PDF) FillRect(r rect.Rect, col Color) {
	p.f.SetFillColor(int(col.R), int(col.G), int(col.B))
	x, y, w, h := p.topLeft(r)
	p.f.Rect(x, y, w, h, "F")
}

// StrokeRect implements the [Document] interface.
func (p *PDF) StrokeRect(r rect.Rect, col Color, lineWidth float64) {
	p.f.SetDrawColor(int(col.R), int(col.G), int(col.B))
	p.f.SetLineWidth(lineWidth)
	x, y, w, h := p.topLeft(r)
	p.f.Rect(x, y, w, h, "D")
}

// DrawImage implements the [Document] interface.
func (p *PDF) DrawImage(img Image, r rect.Rect) {
	x, y, w, h := p.topLeft(r)
	opt := gofpdf.ImageOptions{ImageType: string(img.Format)}
	p.f.ImageOptions(img.Name, x, y, w, h, false, opt, 0, "")
}

// SetInfo implements the [Document] interface.
func (p *PDF) SetInfo(info *Info) {
	if info == nil {
		return
	}
	p.f.SetTitle(info.Title, true)
	p.f.SetSubject(info.Subject, true)
	p.f.SetAuthor(info.Author, true)
	p.f.SetCreator(info.Creator, true)
	p.f.SetKeywords(info.Keywords, true)
	if len(info.XMP) > 0 {
		p.f.SetXmpMetadata(info.XMP)
	}
}

// Bytes implements the [Document] interface.
// After Bytes has been called, the document can no longer be modified.
func (p *PDF) Bytes() ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	buf := &bytes.Buffer{}
	err := p.f.Output(buf)
	if err == nil && buf.Len() == 0 {
		err = errors.New("empty output")
	}
	if err != nil {
		p.err = fmt.Errorf("canvas: %w", err)
		return nil, p.err
	}
	p.err = errAlreadyClosed
	return buf.Bytes(), nil
}

var (
	errAlreadyClosed = errors.New("canvas: document already written")
	errNotEmbedded   = errors.New("not a usable TrueType font")
)

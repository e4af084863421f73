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

// Package canvas defines the drawing surface used to build certificate
// documents.
//
// All coordinates are in PDF points with the origin in the bottom-left
// corner of the page.  Text is positioned by the left end of its baseline.
//
// Two implementations are provided: [PDF] writes a real PDF file, and
// [Recorder] records the drawing operations for inspection in tests.
package canvas

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/rect"
)

// ErrUnsupportedImage is returned when embedding an image in a format other
// than PNG or JPEG.
var ErrUnsupportedImage = errors.New("canvas: unsupported image format")

// Color is an RGB color.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// A Font refers to a font embedded in a document.
type Font struct {
	// Name is the document-local name of the font.
	Name string

	// Standard is set for the built-in Helvetica font, which needs no
	// embedding but can only show WinAnsi characters.
	Standard bool
}

// ImageFormat is the encoding of an embedded image.
type ImageFormat string

// Supported image formats.
const (
	PNG  ImageFormat = "PNG"
	JPEG ImageFormat = "JPG"
)

// An Image refers to an image embedded in a document.
type Image struct {
	Name          string
	Format        ImageFormat
	Width, Height float64
}

// Info holds the document information dictionary entries.
type Info struct {
	Title    string
	Subject  string
	Author   string
	Creator  string
	Keywords string

	// XMP, if non-empty, is embedded as the document metadata stream.
	XMP []byte
}

// Document is a single-page document under construction.
type Document interface {
	// PageSize returns the page width and height.
	PageSize() (width, height float64)

	// EmbedFont adds a TrueType font to the document.
	EmbedFont(name string, data []byte) (Font, error)

	// StandardFont returns the built-in Helvetica font.
	StandardFont() Font

	// EmbedImage adds a PNG or JPEG image to the document.
	EmbedImage(name string, data []byte, format ImageFormat) (Image, error)

	// DrawText shows text with the left end of its baseline at (x, y).
	DrawText(text string, x, y float64, font Font, size float64, col Color)

	// TextWidth returns the width of text at the given size.
	TextWidth(text string, font Font, size float64) float64

	// FillRect fills r.
	FillRect(r rect.Rect, col Color)

	// StrokeRect draws the outline of r.
	StrokeRect(r rect.Rect, col Color, lineWidth float64)

	// DrawImage paints img stretched to fill r.
	DrawImage(img Image, r rect.Rect)

	// SetInfo sets the document metadata.
	SetInfo(info *Info)

	// Bytes finishes the document and returns its encoded form.
	Bytes() ([]byte, error)
}

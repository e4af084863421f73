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

package certificate

import (
	"math"
	"strings"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/certpdf/layout"
)

// Paper sizes in PDF points, in portrait orientation.
var (
	A4     = rect.Rect{URx: 595.276, URy: 841.890}
	A5     = rect.Rect{URx: 420.945, URy: 595.276}
	Letter = rect.Rect{URx: 612, URy: 792}
)

var paperSizes = map[string]rect.Rect{
	"a4":     A4,
	"a5":     A5,
	"letter": Letter,
}

// DefaultWidth and DefaultHeight give the page size used when a template
// specifies no valid size: A4 in landscape orientation.
const (
	DefaultWidth  = 841.89
	DefaultHeight = 595.28
)

// Orientations.
const (
	Portrait  = "portrait"
	Landscape = "landscape"
)

// Template describes the visual layout of a certificate.
type Template struct {
	ID string

	// Width and Height give the page size in points.  If either is
	// missing, the size is taken from Paper.
	Width, Height float64

	// Orientation, if set, is either "portrait" or "landscape".
	Orientation string

	// Paper is one of "A4", "A5" or "Letter".
	Paper string

	// BackgroundImage is a file path or an http(s) URL.
	BackgroundImage string

	Placeholders Placeholders
}

// Placeholders describes where the fields of a certificate are drawn.
type Placeholders struct {
	StudentName       Slot
	CourseName        Slot
	IssuedDate        Slot
	CertificateNumber Slot

	CustomText []Slot

	// Images are drawn at the rectangle given by the attributes
	// x, y, width and height; the attribute src gives the image source.
	Images []Slot

	// QRCode places a code which links to the verification page of the
	// certificate.  It uses the same attributes as Images, except src.
	QRCode Slot
}

// Slot holds the placeholder for one template field.  A slot is either
// absent, explicitly null, or set to a (possibly empty) placeholder.
type Slot struct {
	present bool
	Raw     layout.Raw
}

// Absent returns a slot for a field which is not mentioned in the template.
func Absent() Slot {
	return Slot{}
}

// Null returns a slot for a field which was removed from the template.
func Null() Slot {
	return Slot{present: true}
}

// NewSlot returns a slot holding the given placeholder.  A nil
// placeholder is replaced by an empty one.
func NewSlot(raw layout.Raw) Slot {
	if raw == nil {
		raw = layout.Raw{}
	}
	return Slot{present: true, Raw: raw}
}

// IsNull reports whether the field was explicitly removed.
func (s Slot) IsNull() bool {
	return s.present && s.Raw == nil
}

// IsAbsent reports whether the field is not mentioned in the template.
func (s Slot) IsAbsent() bool {
	return !s.present
}

// PageSize returns the page size of the template, in points.
//
// Width and Height are used if both are positive.  Otherwise the Paper
// size is used, and if this is not set either, A4 landscape.  If the
// orientation disagrees with the resulting shape, width and height are
// swapped.
func (t *Template) PageSize() (width, height float64) {
	width, height = t.Width, t.Height
	if !validSize(width) || !validSize(height) {
		if paper, ok := paperSizes[strings.ToLower(strings.TrimSpace(t.Paper))]; ok {
			width, height = paper.Dx(), paper.Dy()
		} else {
			width, height = DefaultWidth, DefaultHeight
		}
	}

	switch strings.ToLower(strings.TrimSpace(t.Orientation)) {
	case Landscape:
		if width < height {
			width, height = height, width
		}
	case Portrait:
		if width > height {
			width, height = height, width
		}
	}
	return width, height
}

func validSize(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}

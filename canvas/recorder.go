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
	"unicode/utf8"

	"seehuhn.de/go/geom/rect"
)

// OpKind identifies a recorded drawing operation.
type OpKind int

// Recorded operations.
const (
	OpText OpKind = iota + 1
	OpFillRect
	OpStrokeRect
	OpImage
)

func (k OpKind) String() string {
	switch k {
	case OpText:
		return "text"
	case OpFillRect:
		return "fill"
	case OpStrokeRect:
		return "stroke"
	case OpImage:
		return "image"
	default:
		return fmt.Sprintf("op%d", int(k))
	}
}

// Op is one recorded drawing operation.  Only the fields relevant for the
// kind of operation are set.
type Op struct {
	Kind  OpKind
	Text  string
	X, Y  float64
	Font  string
	Size  float64
	Color Color
	Rect  rect.Rect
	Image string
}

// Recorder is a [Document] which records all drawing operations.
//
// Text widths are approximated as half the font size per character.
type Recorder struct {
	Width, Height float64

	// Ops lists the drawing operations in order.
	Ops []Op

	// Fonts lists the names of the successfully embedded fonts.
	Fonts []string

	// Images lists the names of the successfully embedded images.
	Images []string

	Info *Info

	// FailFont and FailImage, if set, make EmbedFont and EmbedImage fail
	// for the given names.
	FailFont  func(name string) bool
	FailImage func(name string) bool

	// FailBytes makes Bytes return an error.
	FailBytes bool
}

// NewRecorder returns a Recorder for a page of the given size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{Width: width, Height: height}
}

// errRecorder is returned for injected failures.
var errRecorder = errors.New("canvas: injected failure")

// PageSize implements the [Document] interface.
func (r *Recorder) PageSize() (float64, float64) {
	return r.Width, r.Height
}

// EmbedFont implements the [Document] interface.
func (r *Recorder) EmbedFont(name string, data []byte) (Font, error) {
	if len(data) == 0 || r.FailFont != nil && r.FailFont(name) {
		return Font{}, fmt.Errorf("font %q: %w", name, errRecorder)
	}
	r.Fonts = append(r.Fonts, name)
	return Font{Name: name}, nil
}

// StandardFont implements the [Document] interface.
func (r *Recorder) StandardFont() Font {
	return Font{Name: standardFontName, Standard: true}
}

// EmbedImage implements the [Document] interface.
func (r *Recorder) EmbedImage(name string, data []byte, format ImageFormat) (Image, error) {
	if format != PNG && format != JPEG {
		return Image{}, ErrUnsupportedImage
	}
	if len(data) == 0 || r.FailImage != nil && r.FailImage(name) {
		return Image{}, fmt.Errorf("image %q: %w", name, errRecorder)
	}
	r.Images = append(r.Images, name)
	return Image{Name: name, Format: format}, nil
}

// DrawText implements the [Document] interface.
func (r *Recorder) DrawText(text string, x, y float64, font Font, size float64, col Color) {
	r.Ops = append(r.Ops, Op{
		Kind:  OpText,
		Text:  text,
		X:     x,
		Y:     y,
		Font:  font.Name,
		Size:  size,
		Color: col,
	})
}

// TextWidth implements the [Document] interface.
func (r *Recorder) TextWidth(text string, font Font, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size / 2
}

// FillRect implements the [Document] interface.
func (r *Recorder) FillRect(box rect.Rect, col Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Rect: box, Color: col})
}

// StrokeRect implements the [Document] interface.
func (r *Recorder) StrokeRect(box rect.Rect, col Color, lineWidth float64) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeRect, Rect: box, Color: col, Size: lineWidth})
}

// DrawImage implements the [Document] interface.
func (r *Recorder) DrawImage(img Image, box rect.Rect) {
	r.Ops = append(r.Ops, Op{Kind: OpImage, Rect: box, Image: img.Name})
}

// SetInfo implements the [Document] interface.
func (r *Recorder) SetInfo(info *Info) {
	r.Info = info
}

// Bytes implements the [Document] interface.  The result is a textual
// listing of the recorded operations.
func (r *Recorder) Bytes() ([]byte, error) {
	if r.FailBytes {
		return nil, errRecorder
	}
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "page %g %g\n", r.Width, r.Height)
	for _, op := range r.Ops {
		switch op.Kind {
		case OpText:
			fmt.Fprintf(buf, "%s %q %g %g %s %g %s\n",
				op.Kind, op.Text, op.X, op.Y, op.Font, op.Size, op.Color)
		case OpImage:
			fmt.Fprintf(buf, "%s %s %v\n", op.Kind, op.Image, op.Rect)
		default:
			fmt.Fprintf(buf, "%s %v %s %g\n", op.Kind, op.Rect, op.Color, op.Size)
		}
	}
	return buf.Bytes(), nil
}

// Texts returns the text operations.
func (r *Recorder) Texts() []Op {
	var res []Op
	for _, op := range r.Ops {
		if op.Kind == OpText {
			res = append(res, op)
		}
	}
	return res
}

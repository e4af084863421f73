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

// Package layout turns the loosely typed placeholder descriptions found in
// certificate templates into complete drawing instructions.
//
// Template positions use the conventions of a web page: the origin is the
// top-left corner of the page and y grows downwards.
package layout

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Defaults used for missing or invalid placeholder attributes.
const (
	DefaultFontSize   = 24
	DefaultFontFamily = "Cairo"
	DefaultColor      = "#000000"
	DefaultAlign      = Center
	DefaultFontWeight = "normal"
)

// Default vertical positions of the standard fields.
const (
	StudentNameY       = 300
	CourseNameY        = 400
	IssuedDateY        = 500
	CertificateNumberY = 600
)

// Align describes the horizontal alignment of text relative to the
// placeholder position.
type Align string

// Supported alignments.
const (
	Left   Align = "left"
	Center Align = "center"
	Right  Align = "right"
)

// Raw is a placeholder as it appears in a template.  Values are taken
// from decoded JSON or YAML and are not checked; numbers may be given as
// strings.
type Raw map[string]any

// Placeholder is a fully resolved text drawing instruction.
// All fields except Text are always set.
type Placeholder struct {
	X, Y       float64
	FontSize   float64
	FontFamily string
	Color      string
	Align      Align
	FontWeight string

	// Text, if non-nil, replaces the value of the field.
	Text *string
}

// Normalize resolves a raw placeholder for a page of the given size.
//
// A nil raw placeholder stands for a field which is absent from the
// template or was explicitly set to null.  If allowNull is set, Normalize
// returns nil in this case; otherwise all attributes take their defaults.
// Missing or invalid attributes are replaced by defaults: x defaults to
// the horizontal page center and y to defaultY.  The position is clamped
// to the page.
func Normalize(raw Raw, pageW, pageH, defaultY float64, allowNull bool) *Placeholder {
	if raw == nil && allowNull {
		return nil
	}

	p := &Placeholder{
		X:          pageW / 2,
		Y:          defaultY,
		FontSize:   DefaultFontSize,
		FontFamily: DefaultFontFamily,
		Color:      DefaultColor,
		Align:      DefaultAlign,
		FontWeight: DefaultFontWeight,
	}
	if x, ok := Number(raw["x"]); ok {
		p.X = x
	}
	if y, ok := Number(raw["y"]); ok {
		p.Y = y
	}
	if size, ok := Number(raw["fontSize"]); ok && size > 0 {
		p.FontSize = size
	}
	if family, ok := raw["fontFamily"].(string); ok && strings.TrimSpace(family) != "" {
		p.FontFamily = strings.TrimSpace(family)
	}
	if col, ok := raw["color"].(string); ok {
		if _, _, _, valid := ParseColor(col); valid {
			p.Color = strings.TrimSpace(col)
		}
	}
	if align, ok := raw["align"].(string); ok {
		switch a := Align(strings.ToLower(strings.TrimSpace(align))); a {
		case Left, Center, Right:
			p.Align = a
		}
	}
	if weight, ok := fontWeight(raw["fontWeight"]); ok {
		p.FontWeight = weight
	}
	if text, ok := raw["text"].(string); ok {
		p.Text = &text
	}

	p.X = Clamp(p.X, 0, pageW)
	p.Y = Clamp(p.Y, 0, pageH)
	return p
}

// Box is a resolved image placement in template coordinates.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// NormalizeBox resolves the rectangle of an image placeholder.  The
// attributes x, y, width and height give the top-left corner and the size;
// missing attributes default to the given box.  The result is clipped to
// the page, and ok is false if nothing of the box remains visible.
func NormalizeBox(raw Raw, pageW, pageH float64, def Box) (box Box, ok bool) {
	box = def
	if x, valid := Number(raw["x"]); valid {
		box.X = x
	}
	if y, valid := Number(raw["y"]); valid {
		box.Y = y
	}
	if w, valid := Number(raw["width"]); valid && w > 0 {
		box.Width = w
	}
	if h, valid := Number(raw["height"]); valid && h > 0 {
		box.Height = h
	}

	x0 := Clamp(box.X, 0, pageW)
	y0 := Clamp(box.Y, 0, pageH)
	x1 := Clamp(box.X+box.Width, 0, pageW)
	y1 := Clamp(box.Y+box.Height, 0, pageH)
	box = Box{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	return box, box.Width > 0 && box.Height > 0
}

// StringValue returns the string stored under key, trimmed of white
// space, or the empty string.
func (r Raw) StringValue(key string) string {
	s, _ := r[key].(string)
	return strings.TrimSpace(s)
}

// Number converts a loosely typed template value to a finite float64.
// Strings are parsed after trimming white space.
func Number(v any) (float64, bool) {
	var x float64
	switch v := v.(type) {
	case float64:
		x = v
	case float32:
		x = float64(v)
	case int:
		x = float64(v)
	case int64:
		x = float64(v)
	case int32:
		x = float64(v)
	case uint:
		x = float64(v)
	case uint64:
		x = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		x = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		x = f
	default:
		return 0, false
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}

func fontWeight(v any) (string, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		return s, s != ""
	}
	if x, ok := Number(v); ok && x > 0 {
		return strconv.FormatFloat(x, 'f', -1, 64), true
	}
	return "", false
}

// Clamp restricts x to the interval [lo, hi].  If hi < lo, lo is returned.
func Clamp(x, lo, hi float64) float64 {
	if x > hi {
		x = hi
	}
	if x < lo {
		x = lo
	}
	return x
}

// ParseColor parses a hex color of the form "#rgb" or "#rrggbb".
func ParseColor(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return 0, 0, 0, false
	}
	s = s[1:]
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}
	x, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(x >> 16), uint8(x >> 8), uint8(x), true
}

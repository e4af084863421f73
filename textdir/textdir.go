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

// Package textdir prepares mixed Arabic and Latin text for painting on a
// PDF page.
//
// PDF text operators place glyphs left to right at increasing x and perform
// no bidirectional reordering and no contextual shaping.  The functions in
// this package convert a string in logical order into a string in visual
// order, with Arabic letters replaced by their contextual presentation forms.
// The result can be shown with a single text operator.
package textdir

import (
	"unicode"
)

// Dir is a paragraph direction.
type Dir int

// The two paragraph directions.
const (
	LTR Dir = iota
	RTL
)

func (d Dir) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// arabic covers the Arabic, Arabic Supplement, Arabic Extended-A and the
// two Arabic presentation forms blocks.
var arabic = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0600, Hi: 0x06FF, Stride: 1},
		{Lo: 0x0750, Hi: 0x077F, Stride: 1},
		{Lo: 0x08A0, Hi: 0x08FF, Stride: 1},
		{Lo: 0xFB50, Hi: 0xFDFF, Stride: 1},
		{Lo: 0xFE70, Hi: 0xFEFF, Stride: 1},
	},
}

func isArabic(r rune) bool {
	return unicode.Is(arabic, r)
}

func isLatin(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// isDigit reports European, Arabic-Indic and Extended Arabic-Indic digits.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9' ||
		r >= 0x0660 && r <= 0x0669 ||
		r >= 0x06F0 && r <= 0x06F9
}

// ContainsArabic reports whether text contains a code point from one of the
// Arabic blocks.
func ContainsArabic(text string) bool {
	return indexFunc(text, isArabic) >= 0
}

// ContainsLatin reports whether text contains an ASCII letter.
func ContainsLatin(text string) bool {
	return indexFunc(text, isLatin) >= 0
}

// IsRTL reports whether text should be laid out as a right-to-left
// paragraph.  This is the case if the first Arabic code point comes before
// the first ASCII letter, or if there is Arabic but no Latin text.  Text
// which contains neither is left-to-right.
func IsRTL(text string) bool {
	a := indexFunc(text, isArabic)
	if a < 0 {
		return false
	}
	l := indexFunc(text, isLatin)
	return l < 0 || a < l
}

// Direction returns the paragraph direction of text.
func Direction(text string) Dir {
	if IsRTL(text) {
		return RTL
	}
	return LTR
}

func indexFunc(text string, f func(rune) bool) int {
	for i, r := range text {
		if f(r) {
			return i
		}
	}
	return -1
}

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

package textdir

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidUTF8 is returned by [Reshape] if the input is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("textdir: invalid UTF-8")

type joining uint8

const (
	joinNone   joining = iota // U: does not join
	joinRight                 // R: joins to the preceding letter only
	joinDual                  // D: joins on both sides
	joinCausing               // C: tatweel
)

// forms lists the presentation forms of a letter: isolated, final, initial
// and medial.  Zero entries mean that the form does not exist.
type forms [4]rune

const (
	isolated = iota
	final
	initial
	medial
)

type letter struct {
	join  joining
	forms forms
}

var letters = map[rune]letter{
	0x0621: {joinNone, forms{0xFE80}},
	0x0622: {joinRight, forms{0xFE81, 0xFE82}},
	0x0623: {joinRight, forms{0xFE83, 0xFE84}},
	0x0624: {joinRight, forms{0xFE85, 0xFE86}},
	0x0625: {joinRight, forms{0xFE87, 0xFE88}},
	0x0626: {joinDual, forms{0xFE89, 0xFE8A, 0xFE8B, 0xFE8C}},
	0x0627: {joinRight, forms{0xFE8D, 0xFE8E}},
	0x0628: {joinDual, forms{0xFE8F, 0xFE90, 0xFE91, 0xFE92}},
	0x0629: {joinRight, forms{0xFE93, 0xFE94}},
	0x062A: {joinDual, forms{0xFE95, 0xFE96, 0xFE97, 0xFE98}},
	0x062B: {joinDual, forms{0xFE99, 0xFE9A, 0xFE9B, 0xFE9C}},
	0x062C: {joinDual, forms{0xFE9D, 0xFE9E, 0xFE9F, 0xFEA0}},
	0x062D: {joinDual, forms{0xFEA1, 0xFEA2, 0xFEA3, 0xFEA4}},
	0x062E: {joinDual, forms{0xFEA5, 0xFEA6, 0xFEA7, 0xFEA8}},
	0x062F: {joinRight, forms{0xFEA9, 0xFEAA}},
	0x0630: {joinRight, forms{0xFEAB, 0xFEAC}},
	0x0631: {joinRight, forms{0xFEAD, 0xFEAE}},
	0x0632: {joinRight, forms{0xFEAF, 0xFEB0}},
	0x0633: {joinDual, forms{0xFEB1, 0xFEB2, 0xFEB3, 0xFEB4}},
	0x0634: {joinDual, forms{0xFEB5, 0xFEB6, 0xFEB7, 0xFEB8}},
	0x0635: {joinDual, forms{0xFEB9, 0xFEBA, 0xFEBB, 0xFEBC}},
	0x0636: {joinDual, forms{0xFEBD, 0xFEBE, 0xFEBF, 0xFEC0}},
	0x0637: {joinDual, forms{0xFEC1, 0xFEC2, 0xFEC3, 0xFEC4}},
	0x0638: {joinDual, forms{0xFEC5, 0xFEC6, 0xFEC7, 0xFEC8}},
	0x0639: {joinDual, forms{0xFEC9, 0xFECA, 0xFECB, 0xFECC}},
	0x063A: {joinDual, forms{0xFECD, 0xFECE, 0xFECF, 0xFED0}},
	0x0640: {joinCausing, forms{0x0640, 0x0640, 0x0640, 0x0640}},
	0x0641: {joinDual, forms{0xFED1, 0xFED2, 0xFED3, 0xFED4}},
	0x0642: {joinDual, forms{0xFED5, 0xFED6, 0xFED7, 0xFED8}},
	0x0643: {joinDual, forms{0xFED9, 0xFEDA, 0xFEDB, 0xFEDC}},
	0x0644: {joinDual, forms{0xFEDD, 0xFEDE, 0xFEDF, 0xFEE0}},
	0x0645: {joinDual, forms{0xFEE1, 0xFEE2, 0xFEE3, 0xFEE4}},
	0x0646: {joinDual, forms{0xFEE5, 0xFEE6, 0xFEE7, 0xFEE8}},
	0x0647: {joinDual, forms{0xFEE9, 0xFEEA, 0xFEEB, 0xFEEC}},
	0x0648: {joinRight, forms{0xFEED, 0xFEEE}},
	0x0649: {joinDual, forms{0xFEEF, 0xFEF0, 0xFBE8, 0xFBE9}},
	0x064A: {joinDual, forms{0xFEF1, 0xFEF2, 0xFEF3, 0xFEF4}},

	// letters used in Persian and Urdu names
	0x0671: {joinRight, forms{0xFB50, 0xFB51}},
	0x067E: {joinDual, forms{0xFB56, 0xFB57, 0xFB58, 0xFB59}},
	0x0686: {joinDual, forms{0xFB7A, 0xFB7B, 0xFB7C, 0xFB7D}},
	0x0698: {joinRight, forms{0xFB8A, 0xFB8B}},
	0x06A9: {joinDual, forms{0xFB8E, 0xFB8F, 0xFB90, 0xFB91}},
	0x06AF: {joinDual, forms{0xFB92, 0xFB93, 0xFB94, 0xFB95}},
	0x06CC: {joinDual, forms{0xFBFC, 0xFBFD, 0xFBFE, 0xFBFF}},
}

// lamAlef maps the alef following a lam to the isolated and final forms of
// the ligature.
var lamAlef = map[rune][2]rune{
	0x0622: {0xFEF5, 0xFEF6},
	0x0623: {0xFEF7, 0xFEF8},
	0x0625: {0xFEF9, 0xFEFA},
	0x0627: {0xFEFB, 0xFEFC},
}

const lam = 0x0644

// isTransparent reports combining marks which are skipped when determining
// the joining context.
func isTransparent(r rune) bool {
	switch {
	case r >= 0x0610 && r <= 0x061A,
		r >= 0x064B && r <= 0x065F,
		r == 0x0670,
		r >= 0x06D6 && r <= 0x06DC,
		r >= 0x06DF && r <= 0x06E4,
		r == 0x06E7, r == 0x06E8,
		r >= 0x06EA && r <= 0x06ED:
		return true
	}
	return false
}

func joinsForward(r rune) bool {
	l, ok := letters[r]
	return ok && (l.join == joinDual || l.join == joinCausing)
}

func joinsBackward(r rune) bool {
	l, ok := letters[r]
	return ok && l.join != joinNone
}

// Reshape replaces the Arabic letters in text by their contextual
// presentation forms (Unicode blocks FB50-FDFF and FE70-FEFF) and forms
// lam-alef ligatures.  The output stays in logical order.  Text without
// Arabic letters is returned unchanged.
//
// The input is converted to NFC before shaping.
func Reshape(text string) (string, error) {
	if !ContainsArabic(text) {
		return text, nil
	}
	if !utf8.ValidString(text) {
		return "", ErrInvalidUTF8
	}

	rr := []rune(norm.NFC.String(text))
	out := make([]rune, 0, len(rr))

	// prev returns the index of the closest non-transparent rune before i.
	prev := func(i int) int {
		for j := i - 1; j >= 0; j-- {
			if !isTransparent(rr[j]) {
				return j
			}
		}
		return -1
	}
	next := func(i int) int {
		for j := i + 1; j < len(rr); j++ {
			if !isTransparent(rr[j]) {
				return j
			}
		}
		return -1
	}

	for i := 0; i < len(rr); i++ {
		r := rr[i]
		l, ok := letters[r]
		if !ok {
			out = append(out, r)
			continue
		}

		p := prev(i)
		joinPrev := p >= 0 && joinsForward(rr[p]) && l.join != joinNone

		n := next(i)
		if r == lam && n >= 0 {
			if lig, isLig := lamAlef[rr[n]]; isLig {
				if joinPrev {
					out = append(out, lig[1])
				} else {
					out = append(out, lig[0])
				}
				// marks between the lam and the alef follow the ligature
				out = append(out, rr[i+1:n]...)
				i = n
				continue
			}
		}
		joinNext := n >= 0 && joinsForward(r) && joinsBackward(rr[n])

		var form int
		switch {
		case joinPrev && joinNext:
			form = medial
		case joinPrev:
			form = final
		case joinNext:
			form = initial
		default:
			form = isolated
		}
		g := l.forms[form]
		if g == 0 {
			g = l.forms[isolated]
		}
		out = append(out, g)
	}
	return string(out), nil
}

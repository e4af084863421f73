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
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"seehuhn.de/go/certpdf/internal/logging"
)

// Class is the direction class of a character or of a run.
type Class int

// Direction classes.
const (
	Neutral Class = iota
	LTRClass
	RTLClass
	Number
)

func (c Class) String() string {
	switch c {
	case LTRClass:
		return "ltr"
	case RTLClass:
		return "rtl"
	case Number:
		return "number"
	default:
		return "neutral"
	}
}

// Classify returns the direction class of a single rune.
func Classify(r rune) Class {
	switch {
	case isDigit(r):
		return Number
	case isArabic(r):
		return RTLClass
	case isLatin(r):
		return LTRClass
	default:
		return Neutral
	}
}

// A Run is a maximal substring with a common direction class.
type Run struct {
	Text  string
	Class Class
}

// SplitRuns partitions text into runs.  Digits and neutral characters
// attach to the run they follow.  A new run starts whenever a Latin or
// Arabic letter disagrees with the class of the current run.
//
// Concatenating the Text fields of the result gives back text.
func SplitRuns(text string) []Run {
	var runs []Run
	start := 0
	cur := Neutral
	for i, r := range text {
		c := Classify(r)
		if i == 0 {
			cur = c
			continue
		}
		if c == cur || c == Neutral || c == Number {
			continue
		}
		runs = append(runs, Run{Text: text[start:i], Class: cur})
		start = i
		cur = c
	}
	if start < len(text) {
		runs = append(runs, Run{Text: text[start:], Class: cur})
	}
	return runs
}

// Process converts text from logical order into a string which can be
// painted left to right.  Arabic runs are shaped and reversed, and for a
// right-to-left paragraph the order of the runs is reversed.
//
// Shaping failures are logged and the affected run is reversed unshaped.
func Process(text string) string {
	return process(text, logging.Logger())
}

// ProcessWithLogger is like [Process], but reports shaping failures to l.
func ProcessWithLogger(text string, l *slog.Logger) string {
	return process(text, logging.Or(l))
}

func process(text string, logger *slog.Logger) string {
	if text == "" {
		return ""
	}

	rtl := IsRTL(text)
	runs := SplitRuns(text)

	type piece struct {
		lead, body, trail string
	}
	pieces := make([]piece, len(runs))
	for i, run := range runs {
		lead, body, trail := splitSpace(run.Text)
		if run.Class == RTLClass {
			shaped, err := Reshape(body)
			if err != nil {
				logger.Warn("arabic shaping failed, using unshaped text",
					"text", body, "error", err)
				shaped = body
			}
			body = reverseRTL(shaped)
		} else if rtl && run.Class == Neutral {
			body = strings.Map(mirror, body)
		}
		pieces[i] = piece{lead, body, trail}
	}

	var b strings.Builder
	b.Grow(len(text))
	if rtl {
		for i := len(pieces) - 1; i >= 0; i-- {
			p := pieces[i]
			b.WriteString(p.trail)
			b.WriteString(p.body)
			b.WriteString(p.lead)
		}
	} else {
		for _, p := range pieces {
			b.WriteString(p.lead)
			b.WriteString(p.body)
			b.WriteString(p.trail)
		}
	}
	return b.String()
}

// splitSpace separates leading and trailing white space from s, so that run
// boundaries keep their spacing after reordering.
func splitSpace(s string) (lead, body, trail string) {
	body = strings.TrimLeftFunc(s, unicode.IsSpace)
	lead = s[:len(s)-len(body)]
	trimmed := strings.TrimRightFunc(body, unicode.IsSpace)
	trail = body[len(trimmed):]
	return lead, trimmed, trail
}

// reverseRTL reverses s rune by rune and mirrors paired brackets.  Numbers
// keep their left-to-right digit order; a number is a sequence of digits,
// optionally joined by single separators like "3.5" or "2024/10".
func reverseRTL(s string) string {
	rr := make([]rune, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		rr = append(rr, mirror(r))
	}
	for i, j := 0, len(rr)-1; i < j; i, j = i+1, j-1 {
		rr[i], rr[j] = rr[j], rr[i]
	}

	for i := 0; i < len(rr); {
		if !isDigit(rr[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(rr) {
			if isDigit(rr[j]) {
				j++
			} else if j+1 < len(rr) && isNumberSeparator(rr[j]) && isDigit(rr[j+1]) {
				j += 2
			} else {
				break
			}
		}
		for a, b := i, j-1; a < b; a, b = a+1, b-1 {
			rr[a], rr[b] = rr[b], rr[a]
		}
		i = j
	}
	return string(rr)
}

// mirror returns the counterpart of a paired bracket, which is painted
// with the opposite glyph in right-to-left text.
func mirror(r rune) rune {
	switch r {
	case '(':
		return ')'
	case ')':
		return '('
	case '[':
		return ']'
	case ']':
		return '['
	case '{':
		return '}'
	case '}':
		return '{'
	case '<':
		return '>'
	case '>':
		return '<'
	case '«':
		return '»'
	case '»':
		return '«'
	}
	return r
}

func isNumberSeparator(r rune) bool {
	switch r {
	case '.', ',', ':', '/', '-', 0x066B, 0x066C: // Arabic decimal and thousands separators
		return true
	}
	return false
}

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

// Package certificate defines the records from which certificate
// documents are generated, and converts loosely structured JSON and YAML
// documents into these records.
package certificate

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Certificate describes one issued certificate.
type Certificate struct {
	Number      string
	StudentName Text
	CourseName  Text
	IssuedAt    time.Time
	TemplateID  string
}

// Text is a text value which is either a plain string, or a pair of
// Arabic and English translations.
type Text struct {
	Plain string

	Bilingual bool
	Ar, En    string
}

// PlainText returns a plain text value.
func PlainText(s string) Text {
	return Text{Plain: s}
}

// Bilingual returns a text value with Arabic and English translations.
func Bilingual(ar, en string) Text {
	return Text{Bilingual: true, Ar: ar, En: en}
}

// IsEmpty reports whether t contains no text.
func (t Text) IsEmpty() bool {
	return strings.TrimSpace(t.Plain+t.Ar+t.En) == ""
}

// Resolve returns the text to show for the given locale.
//
// Plain strings are returned as they are.  For bilingual values the
// translation for the locale is used if it is not empty, otherwise the
// other translation.  If no text is available, the default for the
// locale (defAr or defEn) is returned.
func (t Text) Resolve(locale language.Tag, defAr, defEn string) string {
	english := Match(locale) == language.English
	if !t.Bilingual {
		if t.Plain != "" {
			return t.Plain
		}
	} else {
		first, second := t.Ar, t.En
		if english {
			first, second = second, first
		}
		if strings.TrimSpace(first) != "" {
			return first
		}
		if strings.TrimSpace(second) != "" {
			return second
		}
	}
	if english {
		return defEn
	}
	return defAr
}

var matcher = language.NewMatcher([]language.Tag{language.Arabic, language.English})

// Match maps a locale to one of the two supported languages, Arabic and
// English.  Locales matching neither give Arabic.
func Match(locale language.Tag) language.Tag {
	_, idx, conf := matcher.Match(locale)
	if conf == language.No || idx != 1 {
		return language.Arabic
	}
	return language.English
}

// ParseLocale parses a BCP 47 language tag like "ar" or "en-US" and maps
// it to a supported language using [Match].  Invalid tags give Arabic.
func ParseLocale(s string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return language.Arabic
	}
	return Match(tag)
}

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

package fontcache

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DefaultFamily is used for unknown font families.
const DefaultFamily = "Cairo"

// defaultFiles maps normalized family names to font files.  Only regular
// weights are bundled; bold is simulated when drawing.
var defaultFiles = map[string]string{
	"cairo":             "Cairo-Regular.ttf",
	"amiri":             "Amiri-Regular.ttf",
	"tajawal":           "Tajawal-Regular.ttf",
	"almarai":           "Almarai-Regular.ttf",
	"changa":            "Changa-Regular.ttf",
	"el messiri":        "ElMessiri-Regular.ttf",
	"noto sans arabic":  "NotoSansArabic-Regular.ttf",
	"noto naskh arabic": "NotoNaskhArabic-Regular.ttf",
	"noto kufi arabic":  "NotoKufiArabic-Regular.ttf",
	"roboto":            "Roboto-Regular.ttf",
	"open sans":         "OpenSans-Regular.ttf",
	"lato":              "Lato-Regular.ttf",
	"montserrat":        "Montserrat-Regular.ttf",
	"poppins":           "Poppins-Regular.ttf",

	// generic and system names
	"arial":           "Cairo-Regular.ttf",
	"helvetica":       "Cairo-Regular.ttf",
	"sans-serif":      "Cairo-Regular.ttf",
	"times new roman": "Amiri-Regular.ttf",
	"serif":           "Amiri-Regular.ttf",
}

// Filename returns the file name of the font used for the given family
// and weight.  Family names are matched case-insensitively, and for a CSS
// font list only the first entry is used.  Unknown families resolve to
// the [DefaultFamily] file.
func Filename(family, weight string) string {
	return lookupFile(defaultFiles, family)
}

func lookupFile(files map[string]string, family string) string {
	if fname, ok := files[familyKey(family)]; ok {
		return fname
	}
	return files[familyKey(DefaultFamily)]
}

// familyKey normalizes a family name: "'Noto  Sans Arabic', serif" becomes
// "noto sans arabic".
func familyKey(family string) string {
	if i := strings.IndexByte(family, ','); i >= 0 {
		family = family[:i]
	}
	family = strings.Trim(strings.TrimSpace(family), `"'`)
	return strings.ToLower(strings.Join(strings.Fields(family), " "))
}

// parseFontMap reads lines of the form
//
//	<family>|<filename>
//
// Empty lines and lines starting with '#' are ignored.
func parseFontMap(r io.Reader) (map[string]string, error) {
	res := make(map[string]string)
	lines := bufio.NewScanner(r)
	lineNo := 0
	for lines.Scan() {
		lineNo++
		line := strings.TrimSpace(lines.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		family, fname, ok := strings.Cut(line, "|")
		family = familyKey(family)
		fname = strings.TrimSpace(fname)
		if !ok || family == "" || fname == "" {
			return nil, fmt.Errorf("fontcache: invalid font map line %d: %q", lineNo, line)
		}
		if strings.ContainsAny(fname, `/\`) {
			return nil, fmt.Errorf("fontcache: font map line %d: file name must not contain a path", lineNo)
		}
		res[family] = fname
	}
	if err := lines.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

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
	"math"
	"strconv"
	"strings"
)

// Weight is a normalized font weight.
type Weight int

// The nine CSS weight classes.
const (
	Thin Weight = iota + 1
	ExtraLight
	Light
	Normal
	Medium
	SemiBold
	Bold
	ExtraBold
	Black
)

var weightNames = map[Weight]string{
	Thin:       "thin",
	ExtraLight: "extralight",
	Light:      "light",
	Normal:     "normal",
	Medium:     "medium",
	SemiBold:   "semibold",
	Bold:       "bold",
	ExtraBold:  "extrabold",
	Black:      "black",
}

func (w Weight) String() string {
	if s, ok := weightNames[w]; ok {
		return s
	}
	return "normal"
}

var weightKeywords = map[string]Weight{
	"thin":       Thin,
	"hairline":   Thin,
	"extralight": ExtraLight,
	"ultralight": ExtraLight,
	"light":      Light,
	"lighter":    Light,
	"normal":     Normal,
	"regular":    Normal,
	"book":       Normal,
	"medium":     Medium,
	"semibold":   SemiBold,
	"demibold":   SemiBold,
	"bold":       Bold,
	"bolder":     Bold,
	"extrabold":  ExtraBold,
	"ultrabold":  ExtraBold,
	"black":      Black,
	"heavy":      Black,
}

// NormalizeWeight maps a CSS font weight, either numeric ("100" to "900")
// or a keyword like "bold" or "semi-bold", to a [Weight].  Numeric values
// are rounded to the nearest hundred.  Missing or unrecognized values give
// [Normal].
func NormalizeWeight(weight string) Weight {
	s := strings.ToLower(strings.TrimSpace(weight))
	s = strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
	if s == "" {
		return Normal
	}
	if w, ok := weightKeywords[s]; ok {
		return w
	}

	x, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(x) || x < 1 || x > 1000 {
		return Normal
	}
	n := int(math.Round(x / 100))
	n = max(1, min(n, 9))
	return Weight(n)
}

// IsBold reports whether a weight is rendered with simulated bold, i.e.
// whether it normalizes to semibold or heavier.
func IsBold(weight string) bool {
	return NormalizeWeight(weight) >= SemiBold
}

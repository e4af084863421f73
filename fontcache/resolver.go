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

// Package fontcache locates the font files for font families named in
// certificate templates and embeds them into documents.
//
// A missing or broken font file never causes an error.  Instead,
// [Resolver.Load] walks a fallback chain which ends with a font built into
// every document.
package fontcache

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/exp/maps"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/certpdf/canvas"
	"seehuhn.de/go/certpdf/internal/logging"
)

// Resolver maps font families to font files in a directory.
//
// It is safe to use a Resolver concurrently from multiple goroutines, as
// long as each goroutine uses its own documents.
type Resolver struct {
	dir    string
	cache  *Cache
	logger *slog.Logger

	mu    sync.RWMutex
	files map[string]string
}

// NewResolver returns a Resolver for the fonts in dir.  If cache is nil, a
// new cache is allocated.  If logger is nil, the shared certpdf logger is
// used.
func NewResolver(dir string, cache *Cache, logger *slog.Logger) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	return &Resolver{
		dir:    dir,
		cache:  cache,
		logger: logging.Or(logger),
		files:  maps.Clone(defaultFiles),
	}
}

// Dir returns the font directory.
func (r *Resolver) Dir() string {
	return r.dir
}

// AddFontMap reads additional family to file mappings from rd, one
// "<family>|<filename>" entry per line.  Lines starting with '#' are
// ignored.  Existing entries are overwritten.
func (r *Resolver) AddFontMap(rd io.Reader) error {
	m, err := parseFontMap(rd)
	if err != nil {
		return err
	}
	r.mu.Lock()
	maps.Copy(r.files, m)
	r.mu.Unlock()
	return nil
}

// Filename returns the file name used for the given family and weight.
func (r *Resolver) Filename(family, weight string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lookupFile(r.files, family)
}

// ReadFont returns the validated contents of the font file for the given
// family and weight.
func (r *Resolver) ReadFont(family, weight string) ([]byte, error) {
	return r.readFile(r.Filename(family, weight))
}

func (r *Resolver) readFile(fname string) ([]byte, error) {
	path := filepath.Join(r.dir, fname)
	data, err := r.cache.Load(path)
	if err != nil {
		return nil, err
	}
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fontcache: %s: %w", fname, err)
	}
	r.logger.Debug("font loaded", "file", fname, "family", info.FamilyName)
	return data, nil
}

// Load embeds the font for the given family and weight into doc.
//
// If the font cannot be loaded, the following fallbacks are tried in
// order: the normal weight of the same family, the [DefaultFamily], the Go
// Regular font which is compiled into the program, and finally the
// standard Helvetica font of the document.  Load therefore always returns
// a usable font.
func (r *Resolver) Load(doc canvas.Document, family, weight string) canvas.Font {
	type candidate struct {
		family, weight string
	}
	chain := []candidate{
		{family, weight},
		{family, Normal.String()},
		{DefaultFamily, Normal.String()},
	}

	tried := make(map[string]bool)
	for _, c := range chain {
		fname := r.Filename(c.family, c.weight)
		if tried[fname] {
			continue
		}
		tried[fname] = true

		data, err := r.readFile(fname)
		if err == nil {
			var F canvas.Font
			F, err = doc.EmbedFont(fontName(fname), data)
			if err == nil {
				return F
			}
		}
		r.logger.Warn("font not available, trying fallback",
			"family", c.family, "weight", c.weight, "file", fname, "error", err)
	}

	F, err := doc.EmbedFont("GoRegular", goregular.TTF)
	if err == nil {
		return F
	}
	r.logger.Warn("bundled font not usable, using standard font", "error", err)
	return doc.StandardFont()
}

// fontName derives a document-local font name from a file name:
// "Noto Sans-Regular.ttf" becomes "NotoSansRegular".
func fontName(fname string) string {
	base := strings.TrimSuffix(fname, filepath.Ext(fname))
	return strings.Map(func(r rune) rune {
		if r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, base)
}

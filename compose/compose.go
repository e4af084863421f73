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

// Package compose generates certificate documents.
//
// A [Generator] combines a certificate record with a layout template and
// draws the result onto a single page.  Missing fonts and images never
// prevent a certificate from being produced; they are replaced by
// fallbacks and reported through the logger.
package compose

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"

	"seehuhn.de/go/certpdf/canvas"
	"seehuhn.de/go/certpdf/certificate"
	"seehuhn.de/go/certpdf/fontcache"
	"seehuhn.de/go/certpdf/imageload"
	"seehuhn.de/go/certpdf/internal/logging"
	"seehuhn.de/go/certpdf/metadata"
)

// DefaultCreator is recorded as the creator of generated documents.
const DefaultCreator = "seehuhn.de/go/certpdf"

// Options configure a [Generator].
type Options struct {
	// Fonts resolves font families.  If nil, fonts are read from the
	// directory "fonts".
	Fonts *fontcache.Resolver

	// Images loads background and auxiliary images.  If nil, a loader
	// with default options is used.
	Images *imageload.Loader

	// Locale selects between the Arabic and the English text of
	// bilingual fields, unless a locale is given for an individual
	// render call.  The default is Arabic.
	Locale language.Tag

	// ForceDefaultLayout draws the built-in layout on every certificate,
	// in addition to the template placeholders.
	ForceDefaultLayout bool

	// Debug has the same effect on the layout as ForceDefaultLayout, and
	// logs details of each render call.
	Debug bool

	// VerifyURL is the prefix of the verification links encoded in QR
	// codes.  The certificate number is appended.  If empty, no QR codes
	// are drawn.
	VerifyURL string

	// OwnerPassword, if set, protects the generated documents against
	// modification.
	OwnerPassword string

	// Author and Creator are recorded in the document metadata.
	Author  string
	Creator string

	// Now returns the current time.  It is used as the issue date for
	// certificates without one.  The default is time.Now.
	Now func() time.Time

	// NewDocument creates the document for one certificate.  The default
	// is [canvas.New].
	NewDocument func(width, height float64, opt *canvas.Options) (canvas.Document, error)

	Logger *slog.Logger
}

// RenderOptions modify a single render call.
type RenderOptions struct {
	// Locale, if not zero, overrides the locale of the generator.
	Locale language.Tag

	// ForceDefaultLayout draws the built-in layout for this certificate.
	ForceDefaultLayout bool
}

// Generator produces certificate documents.
// It is safe for concurrent use.
type Generator struct {
	fonts  *fontcache.Resolver
	images *imageload.Loader
	locale language.Tag

	forceDefault bool
	debug        bool

	verifyURL     string
	ownerPassword string
	author        string
	creator       string

	now         func() time.Time
	newDocument func(width, height float64, opt *canvas.Options) (canvas.Document, error)
	logger      *slog.Logger
}

// New returns a new Generator.  The argument may be nil, to use default
// options.
func New(opt *Options) *Generator {
	if opt == nil {
		opt = &Options{}
	}
	logger := logging.Or(opt.Logger)

	g := &Generator{
		fonts:         opt.Fonts,
		images:        opt.Images,
		locale:        certificate.Match(opt.Locale),
		forceDefault:  opt.ForceDefaultLayout,
		debug:         opt.Debug,
		verifyURL:     strings.TrimSpace(opt.VerifyURL),
		ownerPassword: opt.OwnerPassword,
		author:        opt.Author,
		creator:       opt.Creator,
		now:           opt.Now,
		newDocument:   opt.NewDocument,
		logger:        logger,
	}
	if g.fonts == nil {
		g.fonts = fontcache.NewResolver("fonts", nil, logger)
	}
	if g.images == nil {
		g.images = imageload.New(&imageload.Options{Logger: logger})
	}
	if g.creator == "" {
		g.creator = DefaultCreator
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.newDocument == nil {
		g.newDocument = func(width, height float64, opt *canvas.Options) (canvas.Document, error) {
			return canvas.New(width, height, opt)
		}
	}
	return g
}

// Locale returns the default locale of the generator.
func (g *Generator) Locale() language.Tag {
	return g.locale
}

// Render produces the document for one certificate.
//
// The returned error is an [*InputError] if cert or tmpl is nil, and a
// [*GenerationError] if the document cannot be produced.
func (g *Generator) Render(ctx context.Context, cert *certificate.Certificate, tmpl *certificate.Template, opt *RenderOptions) ([]byte, error) {
	switch {
	case cert == nil && tmpl == nil:
		return nil, &InputError{Msg: "missing certificate data and template"}
	case cert == nil:
		return nil, &InputError{Msg: "missing certificate data"}
	case tmpl == nil:
		return nil, &InputError{Msg: "missing template"}
	}
	if opt == nil {
		opt = &RenderOptions{}
	}
	if err := ctx.Err(); err != nil {
		return nil, &GenerationError{Err: err}
	}

	locale := g.locale
	if opt.Locale != language.Und {
		locale = certificate.Match(opt.Locale)
	}
	issued := cert.IssuedAt
	if issued.IsZero() {
		issued = g.now()
	}

	width, height := tmpl.PageSize()
	doc, err := g.newDocument(width, height, &canvas.Options{
		CreationDate:  issued,
		OwnerPassword: g.ownerPassword,
	})
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	logger := g.logger.With("certificate", cert.Number)
	pg := &page{
		ctx:    ctx,
		g:      g,
		doc:    doc,
		width:  width,
		height: height,
		locale: locale,
		fonts:  make(map[string]canvas.Font),
		logger: logger,
	}
	if g.debug {
		logger.Debug("rendering certificate",
			"template", tmpl.ID, "width", width, "height", height, "locale", locale)
	}

	pg.base = pg.font(fontcache.DefaultFamily, fontcache.Normal.String())
	pg.background(tmpl.BackgroundImage)

	v := pg.values(cert, issued)
	drawn := pg.drawFields(&tmpl.Placeholders, v)
	drawn = pg.drawCustomText(tmpl.Placeholders.CustomText) || drawn
	drawn = pg.drawImages(tmpl.Placeholders.Images) || drawn
	pg.drawQRCode(tmpl.Placeholders.QRCode, cert.Number)

	if !drawn || g.forceDefault || g.debug || opt.ForceDefaultLayout {
		if g.debug {
			logger.Debug("drawing default layout", "placeholdersDrawn", drawn)
		}
		pg.drawDefaultLayout(v)
	}

	doc.SetInfo(g.info(cert, v, issued, locale, logger))

	data, err := doc.Bytes()
	if err != nil {
		return nil, &GenerationError{Err: err}
	}
	return data, nil
}

// RenderRequest renders the certificate described by req.
func (g *Generator) RenderRequest(ctx context.Context, req *certificate.Request) ([]byte, error) {
	if req == nil {
		return nil, &InputError{Msg: "missing request"}
	}
	opt := &RenderOptions{}
	if req.Locale != "" {
		opt.Locale = certificate.ParseLocale(req.Locale)
	}
	return g.Render(ctx, req.Certificate, req.Template, opt)
}

func (g *Generator) info(cert *certificate.Certificate, v *values, issued time.Time, locale language.Tag, logger *slog.Logger) *canvas.Info {
	info := &canvas.Info{
		Title:    titleFor(locale),
		Subject:  v.courseName,
		Author:   g.author,
		Creator:  g.creator,
		Keywords: "certificate",
	}
	if cert.Number != "" {
		info.Keywords += ", " + cert.Number
	}

	xmp, err := metadata.Build(&metadata.Certificate{
		Number:      cert.Number,
		TitleAr:     titleAr,
		TitleEn:     titleEn,
		Default:     locale,
		Author:      g.author,
		Description: strings.TrimSpace(v.studentName + ", " + v.courseName),
		Keywords:    info.Keywords,
		Producer:    g.creator,
		IssuedAt:    issued,
	})
	if err != nil {
		logger.Warn("cannot build XMP metadata", "error", err)
	} else {
		info.XMP = xmp
	}
	return info
}

// Filename returns the file name for the document of cert, of the form
// "certificate-<number>.pdf".  Characters other than letters, digits,
// '-', '_' and '.' are replaced by '-'.
func Filename(cert *certificate.Certificate) string {
	if cert == nil || strings.TrimSpace(cert.Number) == "" {
		return "certificate.pdf"
	}
	safe := strings.Map(func(r rune) rune {
		if r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)) || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '-'
	}, strings.TrimSpace(cert.Number))
	return "certificate-" + safe + ".pdf"
}

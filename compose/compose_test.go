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

package compose

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/certpdf/canvas"
	"seehuhn.de/go/certpdf/certificate"
	"seehuhn.de/go/certpdf/fontcache"
	"seehuhn.de/go/certpdf/imageload"
	"seehuhn.de/go/certpdf/layout"
	"seehuhn.de/go/certpdf/textdir"
)

var issued = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

// testEnv provides a generator which draws onto recorders.
type testEnv struct {
	t       *testing.T
	gen     *Generator
	uploads string

	mu   sync.Mutex
	docs []*canvas.Recorder
	fail func(*canvas.Recorder)
}

func newTestEnv(t *testing.T, opt *Options) *testEnv {
	t.Helper()
	fonts := t.TempDir()
	err := os.WriteFile(filepath.Join(fonts, "Cairo-Regular.ttf"), goregular.TTF, 0o644)
	if err != nil {
		t.Fatal(err)
	}

	env := &testEnv{t: t, uploads: t.TempDir()}
	if opt == nil {
		opt = &Options{}
	}
	opt.Fonts = fontcache.NewResolver(fonts, nil, nil)
	opt.Images = imageload.New(&imageload.Options{UploadsDir: env.uploads})
	opt.NewDocument = func(width, height float64, _ *canvas.Options) (canvas.Document, error) {
		rec := canvas.NewRecorder(width, height)
		env.mu.Lock()
		defer env.mu.Unlock()
		if env.fail != nil {
			env.fail(rec)
		}
		env.docs = append(env.docs, rec)
		return rec, nil
	}
	env.gen = New(opt)
	return env
}

// render renders a certificate and returns the recorder used.
func (env *testEnv) render(cert *certificate.Certificate, tmpl *certificate.Template, opt *RenderOptions) *canvas.Recorder {
	env.t.Helper()
	_, err := env.gen.Render(context.Background(), cert, tmpl, opt)
	if err != nil {
		env.t.Fatal(err)
	}
	return env.docs[len(env.docs)-1]
}

func (env *testEnv) writeFile(name string, data []byte) {
	env.t.Helper()
	if err := os.WriteFile(filepath.Join(env.uploads, name), data, 0o644); err != nil {
		env.t.Fatal(err)
	}
}

func (env *testEnv) writePNG(name string, w, h int) {
	env.t.Helper()
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		env.t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(env.uploads, name), buf.Bytes(), 0o644); err != nil {
		env.t.Fatal(err)
	}
}

func textOps(rec *canvas.Recorder, text string) []canvas.Op {
	var res []canvas.Op
	for _, op := range rec.Texts() {
		if op.Text == text {
			res = append(res, op)
		}
	}
	return res
}

func opsOfKind(rec *canvas.Recorder, kind canvas.OpKind) []canvas.Op {
	var res []canvas.Op
	for _, op := range rec.Ops {
		if op.Kind == kind {
			res = append(res, op)
		}
	}
	return res
}

func testTemplate(placeholders certificate.Placeholders) *certificate.Template {
	return &certificate.Template{Width: 1200, Height: 900, Placeholders: placeholders}
}

func testCertificate() *certificate.Certificate {
	return &certificate.Certificate{
		Number:      "CERT-2024-0001",
		StudentName: certificate.Bilingual("أحمد", "Ahmed"),
		CourseName:  certificate.Bilingual("", "Course"),
		IssuedAt:    issued,
	}
}

func TestInputErrors(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	cases := []struct {
		cert *certificate.Certificate
		tmpl *certificate.Template
	}{
		{nil, testTemplate(certificate.Placeholders{})},
		{testCertificate(), nil},
		{nil, nil},
	}
	for i, c := range cases {
		_, err := env.gen.Render(ctx, c.cert, c.tmpl, nil)
		var inputErr *InputError
		if !errors.As(err, &inputErr) || !IsInputError(err) {
			t.Errorf("%d: got %v, want input error", i, err)
		}
	}
	if len(env.docs) != 0 {
		t.Error("document created for invalid input")
	}
}

func TestEndToEnd(t *testing.T) {
	env := newTestEnv(t, nil)
	tmpl := testTemplate(certificate.Placeholders{
		StudentName: certificate.NewSlot(layout.Raw{"x": 600, "y": 300, "align": "center", "fontSize": 36}),
	})
	rec := env.render(testCertificate(), tmpl, nil)

	if rec.Width != 1200 || rec.Height != 900 {
		t.Errorf("page size %gx%g", rec.Width, rec.Height)
	}

	shaped := textdir.Process("أحمد")
	ops := textOps(rec, shaped)
	if len(ops) != 1 {
		t.Fatalf("found %d draws of the student name", len(ops))
	}
	op := ops[0]
	w := rec.TextWidth(shaped, canvas.Font{}, 36)
	if op.X != 600-w/2 || op.Y != 573 || op.Size != 36 {
		t.Errorf("student name drawn at (%g, %g) size %g", op.X, op.Y, op.Size)
	}
	if op.Font != "CairoRegular" {
		t.Errorf("font %q", op.Font)
	}

	// the default layout is not used
	if len(textOps(rec, textdir.Process(titleAr))) != 0 {
		t.Error("default layout drawn")
	}
}

func TestBoldSimulation(t *testing.T) {
	env := newTestEnv(t, nil)
	for weight, want := range map[string]int{"700": 4, "bold": 4, "600": 4, "normal": 1, "400": 1} {
		tmpl := testTemplate(certificate.Placeholders{
			StudentName:       certificate.NewSlot(layout.Raw{"fontWeight": weight}),
			CourseName:        certificate.Null(),
			IssuedDate:        certificate.Null(),
			CertificateNumber: certificate.Null(),
		})
		rec := env.render(testCertificate(), tmpl, nil)
		ops := textOps(rec, textdir.Process("أحمد"))
		if len(ops) != want {
			t.Errorf("weight %s: %d draws, want %d", weight, len(ops), want)
			continue
		}
		if want == 4 {
			var offsets [][2]float64
			for _, op := range ops {
				offsets = append(offsets, [2]float64{op.X - ops[0].X, op.Y - ops[0].Y})
			}
			if d := cmp.Diff(offsets, boldOffsets); d != "" {
				t.Errorf("weight %s: offsets (-got +want):\n%s", weight, d)
			}
		}
	}
}

func TestNullPlaceholder(t *testing.T) {
	env := newTestEnv(t, nil)

	tmpl := testTemplate(certificate.Placeholders{
		CourseName: certificate.Null(),
	})
	rec := env.render(testCertificate(), tmpl, nil)
	courseY := 900 - float64(layout.CourseNameY) - layout.DefaultFontSize*ascent
	for _, op := range rec.Texts() {
		if op.Y == courseY {
			t.Errorf("text %q drawn at the course name position", op.Text)
		}
	}
	if len(textOps(rec, "Course")) != 0 {
		t.Error("course name drawn")
	}

	// if all fields are removed, nothing counts as drawn and the
	// default layout is used
	tmpl = testTemplate(certificate.Placeholders{
		StudentName:       certificate.Null(),
		CourseName:        certificate.Null(),
		IssuedDate:        certificate.Null(),
		CertificateNumber: certificate.Null(),
		CustomText:        []certificate.Slot{certificate.Null()},
	})
	rec = env.render(testCertificate(), tmpl, nil)
	if len(textOps(rec, textdir.Process(titleAr))) == 0 {
		t.Error("default layout not drawn")
	}
	if len(textOps(rec, "Course")) == 0 {
		t.Error("default layout lacks the course name")
	}
}

func TestAbsentPlaceholders(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.render(testCertificate(), testTemplate(certificate.Placeholders{}), nil)

	// absent fields are drawn at their default positions
	want := map[string]float64{
		textdir.Process("أحمد"): layout.StudentNameY,
		"Course":                 layout.CourseNameY,
		"CERT-2024-0001":         layout.CertificateNumberY,
	}
	for text, y := range want {
		ops := textOps(rec, text)
		if len(ops) == 0 {
			t.Errorf("%q not drawn", text)
			continue
		}
		if pdfY := 900 - y - 18; ops[0].Y != pdfY {
			t.Errorf("%q at y=%g, want %g", text, ops[0].Y, pdfY)
		}
	}
}

func TestClamping(t *testing.T) {
	env := newTestEnv(t, nil)
	cases := []layout.Raw{
		{"x": -50, "align": "left"},
		{"x": 5000, "align": "center"},
		{"x": 1195, "align": "left"},
		{"x": 3, "align": "right"},
		{"x": 600, "y": -100},
		{"x": 600, "y": 5000},
	}
	for _, raw := range cases {
		tmpl := testTemplate(certificate.Placeholders{
			StudentName:       certificate.NewSlot(raw),
			CourseName:        certificate.Null(),
			IssuedDate:        certificate.Null(),
			CertificateNumber: certificate.Null(),
		})
		rec := env.render(testCertificate(), tmpl, nil)
		for _, op := range rec.Texts() {
			w := rec.TextWidth(op.Text, canvas.Font{}, op.Size)
			if op.X < margin || op.X > 1200-margin-w {
				t.Errorf("%v: x=%g outside [%d, %g]", raw, op.X, margin, 1200-margin-w)
			}
			if op.Y < margin || op.Y > 900-margin {
				t.Errorf("%v: y=%g outside the page", raw, op.Y)
			}
		}
	}

	// text wider than the page starts at the left margin
	text := "A very long text which does not fit on the page at all"
	tmpl := &certificate.Template{
		Width:  200,
		Height: 100,
		Placeholders: certificate.Placeholders{
			StudentName:       certificate.NewSlot(layout.Raw{"text": text, "x": 150, "y": 10}),
			CourseName:        certificate.Null(),
			IssuedDate:        certificate.Null(),
			CertificateNumber: certificate.Null(),
		},
	}
	rec := env.render(testCertificate(), tmpl, nil)
	ops := textOps(rec, text)
	if len(ops) != 1 || ops[0].X != margin {
		t.Errorf("wide text: %+v", ops)
	}
}

func TestBilingual(t *testing.T) {
	env := newTestEnv(t, nil)
	tmpl := testTemplate(certificate.Placeholders{})

	rec := env.render(testCertificate(), tmpl, nil)
	if len(textOps(rec, "Course")) != 1 {
		t.Error("English course name not used as fallback")
	}

	rec = env.render(testCertificate(), tmpl, &RenderOptions{Locale: language.English})
	if len(textOps(rec, "Ahmed")) != 1 {
		t.Error("English student name not used")
	}
	if len(textOps(rec, "March 15, 2024")) != 1 {
		t.Error("English date not used")
	}

	env = newTestEnv(t, &Options{Locale: language.MustParse("en-US")})
	rec = env.render(testCertificate(), tmpl, nil)
	if len(textOps(rec, "Ahmed")) != 1 {
		t.Error("generator locale ignored")
	}
}

func TestMixedDirection(t *testing.T) {
	env := newTestEnv(t, nil)
	cert := testCertificate()
	cert.CourseName = certificate.PlainText("Course CS101 متقدم")
	rec := env.render(cert, testTemplate(certificate.Placeholders{}), nil)
	if len(textOps(rec, "Course CS101 ﻡﺪﻘﺘﻣ")) != 1 {
		t.Errorf("mixed text not found in %+v", rec.Texts())
	}
}

func TestCustomText(t *testing.T) {
	env := newTestEnv(t, nil)
	tmpl := testTemplate(certificate.Placeholders{
		StudentName:       certificate.Null(),
		CourseName:        certificate.Null(),
		IssuedDate:        certificate.Null(),
		CertificateNumber: certificate.Null(),
		CustomText: []certificate.Slot{
			certificate.NewSlot(layout.Raw{"text": "Well done", "align": "left", "x": 100}),
			certificate.NewSlot(layout.Raw{"x": 100}),
			certificate.Null(),
		},
	})
	rec := env.render(testCertificate(), tmpl, nil)
	ops := textOps(rec, "Well done")
	if len(ops) != 1 || ops[0].X != 100 || ops[0].Y != 900-450-18 {
		t.Errorf("custom text: %+v", ops)
	}
	if len(textOps(rec, textdir.Process(titleAr))) != 0 {
		t.Error("custom text does not count as drawn")
	}
}

func TestBackground(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.render(testCertificate(), testTemplate(certificate.Placeholders{}), nil)
	fills := opsOfKind(rec, canvas.OpFillRect)
	if len(fills) != 1 || fills[0].Color != paperColor {
		t.Errorf("fills: %+v", fills)
	}
	if n := len(opsOfKind(rec, canvas.OpStrokeRect)); n != 2 {
		t.Errorf("%d border rectangles", n)
	}
	if rec.Ops[0].Kind != canvas.OpFillRect {
		t.Error("background not drawn first")
	}

	env.writePNG("bg.png", 12, 9)
	tmpl := testTemplate(certificate.Placeholders{})
	tmpl.BackgroundImage = "/uploads/bg.png"
	rec = env.render(testCertificate(), tmpl, nil)
	images := opsOfKind(rec, canvas.OpImage)
	if len(images) != 1 || images[0].Rect != (rect.Rect{URx: 1200, URy: 900}) {
		t.Errorf("images: %+v", images)
	}
	if len(opsOfKind(rec, canvas.OpFillRect)) != 0 {
		t.Error("plain background drawn in addition to the image")
	}

	// broken images fall back to the plain background
	tmpl.BackgroundImage = "/uploads/missing.png"
	rec = env.render(testCertificate(), tmpl, nil)
	if len(opsOfKind(rec, canvas.OpFillRect)) != 1 {
		t.Error("no fallback background")
	}

	// so do images which are too large to decode
	env.writeFile("huge.png", hugePNG(t, 60000, 60000))
	tmpl.BackgroundImage = "/uploads/huge.png"
	rec = env.render(testCertificate(), tmpl, nil)
	if len(opsOfKind(rec, canvas.OpFillRect)) != 1 || len(opsOfKind(rec, canvas.OpImage)) != 0 {
		t.Error("oversized background not replaced")
	}
}

// hugePNG returns a small PNG file whose header claims the given size.
func hugePNG(t *testing.T, width, height uint32) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	binary.BigEndian.PutUint32(data[16:], width)
	binary.BigEndian.PutUint32(data[20:], height)
	binary.BigEndian.PutUint32(data[29:], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestImages(t *testing.T) {
	env := newTestEnv(t, nil)
	env.writePNG("logo.png", 4, 2)
	tmpl := testTemplate(certificate.Placeholders{
		StudentName:       certificate.Null(),
		CourseName:        certificate.Null(),
		IssuedDate:        certificate.Null(),
		CertificateNumber: certificate.Null(),
		Images: []certificate.Slot{
			certificate.NewSlot(layout.Raw{"src": "/uploads/missing.png", "x": 0, "y": 0}),
			certificate.NewSlot(layout.Raw{"src": "/uploads/logo.png", "x": 50, "y": 100, "width": 200, "height": 100}),
			certificate.NewSlot(layout.Raw{"x": 50}),
			certificate.Null(),
		},
	})
	rec := env.render(testCertificate(), tmpl, nil)
	images := opsOfKind(rec, canvas.OpImage)
	want := rect.Rect{LLx: 50, LLy: 700, URx: 250, URy: 800}
	if len(images) != 1 || images[0].Rect != want {
		t.Errorf("images: %+v", images)
	}
	if len(textOps(rec, textdir.Process(titleAr))) != 0 {
		t.Error("an image does not count as drawn")
	}
}

func TestQRCode(t *testing.T) {
	tmpl := testTemplate(certificate.Placeholders{QRCode: certificate.NewSlot(nil)})

	env := newTestEnv(t, nil)
	rec := env.render(testCertificate(), tmpl, nil)
	if n := len(opsOfKind(rec, canvas.OpImage)); n != 0 {
		t.Errorf("QR code drawn without verification URL")
	}

	env = newTestEnv(t, &Options{VerifyURL: "https://example.com/verify/"})
	rec = env.render(testCertificate(), tmpl, nil)
	images := opsOfKind(rec, canvas.OpImage)
	want := rect.Rect{LLx: 1060, LLy: 40, URx: 1160, URy: 140}
	if len(images) != 1 || images[0].Rect != want {
		t.Errorf("QR code: %+v", images)
	}
}

func TestForceDefaultLayout(t *testing.T) {
	tmpl := testTemplate(certificate.Placeholders{})
	title := textdir.Process(titleAr)

	env := newTestEnv(t, &Options{ForceDefaultLayout: true})
	rec := env.render(testCertificate(), tmpl, nil)
	if len(textOps(rec, title)) == 0 {
		t.Error("ForceDefaultLayout ignored")
	}

	env = newTestEnv(t, &Options{Debug: true})
	rec = env.render(testCertificate(), tmpl, nil)
	if len(textOps(rec, title)) == 0 {
		t.Error("Debug does not draw the default layout")
	}

	env = newTestEnv(t, nil)
	rec = env.render(testCertificate(), tmpl, &RenderOptions{ForceDefaultLayout: true})
	if len(textOps(rec, title)) == 0 {
		t.Error("RenderOptions.ForceDefaultLayout ignored")
	}
}

func TestIdempotent(t *testing.T) {
	fonts := t.TempDir()
	err := os.WriteFile(filepath.Join(fonts, "Cairo-Regular.ttf"), goregular.TTF, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	gen := New(&Options{
		Fonts:  fontcache.NewResolver(fonts, nil, nil),
		Author: "Academy",
	})
	tmpl := testTemplate(certificate.Placeholders{
		StudentName: certificate.NewSlot(layout.Raw{"fontWeight": "bold"}),
		CourseName:  certificate.NewSlot(layout.Raw{"fontSize": 18}),
	})
	opt := &RenderOptions{ForceDefaultLayout: true}

	ctx := context.Background()
	first, err := gen.Render(ctx, testCertificate(), tmpl, opt)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		data, err := gen.Render(ctx, testCertificate(), tmpl, opt)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(data, first) {
			t.Fatalf("render %d differs from the first one", i+2)
		}
	}
}

func TestIdempotentOperations(t *testing.T) {
	env := newTestEnv(t, nil)
	tmpl := testTemplate(certificate.Placeholders{
		StudentName: certificate.NewSlot(layout.Raw{"fontWeight": "bold"}),
	})
	a := env.render(testCertificate(), tmpl, nil)
	b := env.render(testCertificate(), tmpl, nil)
	if d := cmp.Diff(a.Ops, b.Ops); d != "" {
		t.Errorf("drawing operations differ (-first +second):\n%s", d)
	}
	if d := cmp.Diff(a.Info, b.Info); d != "" {
		t.Errorf("metadata differs (-first +second):\n%s", d)
	}
}

func TestMetadata(t *testing.T) {
	env := newTestEnv(t, &Options{Author: "Academy"})
	rec := env.render(testCertificate(), testTemplate(certificate.Placeholders{}), nil)
	info := rec.Info
	if info == nil {
		t.Fatal("no document info")
	}
	if info.Title != titleAr || info.Subject != "Course" || info.Author != "Academy" || info.Creator != DefaultCreator {
		t.Errorf("info: %+v", info)
	}
	if !bytes.Contains(info.XMP, []byte("CERT-2024-0001")) {
		t.Error("XMP packet lacks the certificate number")
	}
}

func TestGenerationErrors(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fail = func(rec *canvas.Recorder) { rec.FailBytes = true }
	_, err := env.gen.Render(context.Background(), testCertificate(), testTemplate(certificate.Placeholders{}), nil)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Errorf("got %v, want generation error", err)
	}

	gen := New(&Options{
		NewDocument: func(float64, float64, *canvas.Options) (canvas.Document, error) {
			return nil, errors.New("no document")
		},
	})
	_, err = gen.Render(context.Background(), testCertificate(), testTemplate(certificate.Placeholders{}), nil)
	if !errors.As(err, &genErr) {
		t.Errorf("got %v, want generation error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = env.gen.Render(ctx, testCertificate(), testTemplate(certificate.Placeholders{}), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context: %v", err)
	}
}

func TestFontFallback(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fail = func(rec *canvas.Recorder) {
		rec.FailFont = func(name string) bool { return name != "CairoRegular" }
	}
	tmpl := testTemplate(certificate.Placeholders{
		StudentName: certificate.NewSlot(layout.Raw{"fontFamily": "Comic Sans", "fontWeight": "700"}),
	})
	rec := env.render(testCertificate(), tmpl, nil)
	for _, op := range rec.Texts() {
		if op.Font != "CairoRegular" {
			t.Errorf("%q drawn with %q", op.Text, op.Font)
		}
	}

	// without any usable font, the standard font is used
	env.fail = func(rec *canvas.Recorder) {
		rec.FailFont = func(string) bool { return true }
	}
	rec = env.render(testCertificate(), tmpl, nil)
	if len(rec.Texts()) == 0 || rec.Texts()[0].Font != rec.StandardFont().Name {
		t.Error("standard font not used")
	}
}

func TestConcurrentRenders(t *testing.T) {
	env := newTestEnv(t, nil)
	tmpl := testTemplate(certificate.Placeholders{})
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.gen.Render(context.Background(), testCertificate(), tmpl, nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Error(err)
		}
	}
}

func TestRenderPDF(t *testing.T) {
	fonts := t.TempDir()
	err := os.WriteFile(filepath.Join(fonts, "Cairo-Regular.ttf"), goregular.TTF, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	gen := New(&Options{Fonts: fontcache.NewResolver(fonts, nil, nil)})
	tmpl := testTemplate(certificate.Placeholders{
		StudentName: certificate.NewSlot(layout.Raw{"x": 600, "y": 300, "fontSize": "36"}),
	})
	cert := testCertificate()
	cert.StudentName = certificate.PlainText("Ahmed")

	data, err := gen.Render(context.Background(), cert, tmpl, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("not a PDF file")
	}
	if !bytes.Contains(data, []byte("/MediaBox [0 0 1200.00 900.00]")) {
		t.Error("wrong page size")
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate(issued, language.Arabic); got != "١٥ مارس ٢٠٢٤" {
		t.Errorf("Arabic date %q", got)
	}
	if got := formatDate(issued, language.English); got != "March 15, 2024" {
		t.Errorf("English date %q", got)
	}
}

func TestFilename(t *testing.T) {
	cases := []struct {
		cert *certificate.Certificate
		want string
	}{
		{&certificate.Certificate{Number: "CERT-2024-0001"}, "certificate-CERT-2024-0001.pdf"},
		{&certificate.Certificate{Number: "a/b c"}, "certificate-a-b-c.pdf"},
		{&certificate.Certificate{Number: "شهادة1"}, "certificate------1.pdf"},
		{&certificate.Certificate{}, "certificate.pdf"},
		{nil, "certificate.pdf"},
	}
	for _, c := range cases {
		if got := Filename(c.cert); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}

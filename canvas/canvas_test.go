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

package canvas

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/geom/rect"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for x := 0; x < 4; x++ {
		img.Set(x, 1, color.NRGBA{R: 200, A: 255})
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestNewInvalidSize(t *testing.T) {
	for _, sz := range [][2]float64{{0, 100}, {100, -1}} {
		if _, err := New(sz[0], sz[1], nil); err == nil {
			t.Errorf("New(%g, %g) succeeded", sz[0], sz[1])
		}
	}
}

func TestPDF(t *testing.T) {
	doc, err := New(1200, 900, &Options{NoCompression: true})
	if err != nil {
		t.Fatal(err)
	}
	if w, h := doc.PageSize(); w != 1200 || h != 900 {
		t.Errorf("page size %gx%g", w, h)
	}

	F, err := doc.EmbedFont("goregular", goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if w := doc.TextWidth("Hello", F, 24); w <= 0 || w > 5*24 {
		t.Errorf("implausible text width %g", w)
	}

	img, err := doc.EmbedImage("dot", testPNG(t), PNG)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width <= 0 || img.Height <= 0 {
		t.Errorf("image size %gx%g", img.Width, img.Height)
	}

	doc.FillRect(rect.Rect{LLx: 0, LLy: 0, URx: 1200, URy: 900}, Color{253, 251, 247})
	doc.StrokeRect(rect.Rect{LLx: 20, LLy: 20, URx: 1180, URy: 880}, Black, 2)
	doc.DrawImage(img, rect.Rect{LLx: 10, LLy: 10, URx: 50, URy: 40})
	doc.DrawText("Hello", 100, 573, F, 36, Black)
	doc.DrawText("Plain", 100, 500, doc.StandardFont(), 12, Color{255, 0, 0})
	doc.SetInfo(&Info{Title: "Test", Author: "certpdf"})

	data, err := doc.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("missing PDF header")
	}
	if !bytes.Contains(data, []byte("/MediaBox [0 0 1200.00 900.00]")) {
		t.Errorf("page size not found in output")
	}

	if _, err := doc.Bytes(); err == nil {
		t.Error("second call to Bytes succeeded")
	}
}

func TestPDFBadResources(t *testing.T) {
	doc, err := New(300, 200, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := doc.EmbedFont("junk", []byte("not a font at all")); err == nil {
		t.Error("junk font accepted")
	}
	if _, err := doc.EmbedImage("junk", []byte("not an image"), PNG); err == nil {
		t.Error("junk image accepted")
	}
	if _, err := doc.EmbedImage("gif", testPNG(t), ImageFormat("GIF")); err != ErrUnsupportedImage {
		t.Errorf("got %v, want ErrUnsupportedImage", err)
	}

	// the document must still be usable
	doc.DrawText("still fine", 10, 100, doc.StandardFont(), 12, Black)
	if _, err := doc.Bytes(); err != nil {
		t.Fatal(err)
	}
}

func TestPDFReproducible(t *testing.T) {
	date := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	render := func() []byte {
		doc, err := New(400, 300, &Options{CreationDate: date})
		if err != nil {
			t.Fatal(err)
		}
		doc.FillRect(rect.Rect{URx: 400, URy: 300}, White)
		doc.DrawText("Certificate", 20, 150, doc.StandardFont(), 20, Black)
		data, err := doc.Bytes()
		if err != nil {
			t.Fatal(err)
		}
		return data
	}
	if !bytes.Equal(render(), render()) {
		t.Error("output differs between runs")
	}
}

func TestPDFProtection(t *testing.T) {
	doc, err := New(300, 200, &Options{OwnerPassword: "s3cret"})
	if err != nil {
		t.Fatal(err)
	}
	data, err := doc.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("/Encrypt")) {
		t.Error("document is not encrypted")
	}

	// U+0007 is a prohibited control character for SASLprep
	if _, err := New(300, 200, &Options{OwnerPassword: "bad\u0007"}); err == nil {
		t.Error("invalid password accepted")
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(100, 50)
	r.FailFont = func(name string) bool { return name == "broken" }

	if _, err := r.EmbedFont("broken", []byte{1}); err == nil {
		t.Error("injected failure not reported")
	}
	F, err := r.EmbedFont("ok", []byte{1})
	if err != nil {
		t.Fatal(err)
	}
	if w := r.TextWidth("abcd", F, 10); w != 20 {
		t.Errorf("width %g, want 20", w)
	}
	r.DrawText("abcd", 1, 2, F, 10, Black)
	r.FillRect(rect.Rect{URx: 100, URy: 50}, White)

	want := []Op{{Kind: OpText, Text: "abcd", X: 1, Y: 2, Font: "ok", Size: 10}}
	if diff := cmp.Diff(r.Texts(), want); diff != "" {
		t.Errorf("texts differ (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(r.Fonts, []string{"ok"}); diff != "" {
		t.Errorf("fonts differ (-got +want):\n%s", diff)
	}

	a, _ := r.Bytes()
	b, _ := r.Bytes()
	if !bytes.Equal(a, b) {
		t.Error("listing not stable")
	}
}

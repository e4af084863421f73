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

package metadata

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"
)

var testCert = &Certificate{
	Number:      "CERT-2024-0001",
	TitleAr:     "شهادة إتمام",
	TitleEn:     "Certificate of Completion",
	Default:     language.Arabic,
	Author:      "Academy",
	Description: "Ahmed, Advanced Go",
	Keywords:    "certificate, CERT-2024-0001",
	Producer:    "seehuhn.de/go/certpdf",
	IssuedAt:    time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
}

func TestRoundTrip(t *testing.T) {
	original, err := Packet(testCert)
	if err != nil {
		t.Fatal(err)
	}
	data, err := Build(testCert)
	if err != nil {
		t.Fatal(err)
	}
	extracted, err := xmp.Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to read packet: %v", err)
	}

	var originalDC, extractedDC xmp.DublinCore
	original.Get(&originalDC)
	extracted.Get(&extractedDC)
	if diff := cmp.Diff(extractedDC, originalDC); diff != "" {
		t.Errorf("round trip failed (-got +want):\n%s", diff)
	}

	var mm MM
	extracted.Get(&mm)
	want := "uuid:" + DocumentID(testCert.Number).String()
	if mm.DocumentID.V != want {
		t.Errorf("document ID %q, want %q", mm.DocumentID.V, want)
	}

	var titles Titles
	extracted.Get(&titles)
	got := []string{titles.Number.V, titles.TitleAr.V, titles.TitleEn.V}
	if diff := cmp.Diff(got, []string{testCert.Number, testCert.TitleAr, testCert.TitleEn}); diff != "" {
		t.Errorf("titles (-got +want):\n%s", diff)
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, err := Build(testCert)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		b, err := Build(testCert)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a, b) {
			t.Fatalf("packet %d differs from the first one", i+2)
		}
	}
	for _, s := range []string{"Certificate of Completion", "شهادة إتمام", "seehuhn.de/go/certpdf", "2024-03-15"} {
		if !bytes.Contains(a, []byte(s)) {
			t.Errorf("packet does not contain %q", s)
		}
	}
}

func TestDocumentID(t *testing.T) {
	a := DocumentID("CERT-1")
	if a != DocumentID("CERT-1") {
		t.Error("document ID not stable")
	}
	if a == DocumentID("CERT-2") {
		t.Error("distinct certificates share a document ID")
	}
	if a.Version() != 5 {
		t.Errorf("version %d, want 5", a.Version())
	}
}

func TestEmpty(t *testing.T) {
	_, err := Build(&Certificate{})
	if err != nil {
		t.Fatal(err)
	}
}

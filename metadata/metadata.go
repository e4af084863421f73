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

// Package metadata builds the XMP metadata packets embedded into
// certificates.
package metadata

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"
)

// namespace is the UUID namespace for certificate document IDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://seehuhn.de/go/certpdf"))

// Certificate holds the information recorded in the metadata of a
// certificate document.  Empty fields are omitted.
type Certificate struct {
	Number string

	// TitleAr and TitleEn are the Arabic and English document titles.
	// The title in the default language is used as the "x-default" entry.
	TitleAr, TitleEn string
	Default          language.Tag

	Author      string
	Description string
	Keywords    string
	Producer    string
	IssuedAt    time.Time
}

// PDF is the XMP namespace for PDF metadata.
type PDF struct {
	_        xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_        xmp.Prefix    `xmp:"pdf"`
	Keywords xmp.Text
	Producer xmp.AgentName
}

// MM is the subset of the XMP media management namespace used for
// certificates.
type MM struct {
	_          xmp.Namespace `xmp:"http://ns.adobe.com/xap/1.0/mm/"`
	_          xmp.Prefix    `xmp:"xmpMM"`
	DocumentID xmp.Text
	InstanceID xmp.Text
}

// Titles is the certpdf namespace.  It records the certificate number and
// the document title in both languages.  Dublin Core only carries the
// title in the default language, since its language alternatives have no
// fixed order in the serialized packet.
type Titles struct {
	_       xmp.Namespace `xmp:"https://seehuhn.de/go/certpdf/ns/1.0/"`
	_       xmp.Prefix    `xmp:"certpdf"`
	Number  xmp.Text
	TitleAr xmp.Text
	TitleEn xmp.Text
}

// DocumentID returns the document ID of the certificate with the given
// number.  The ID only depends on the number, so that documents
// regenerated for the same certificate share their ID.
func DocumentID(number string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(number))
}

// Packet returns the XMP packet describing c.
func Packet(c *Certificate) (*xmp.Packet, error) {
	xDefault := language.MustParse("x-default")

	dc := &xmp.DublinCore{}
	title := c.TitleEn
	if c.TitleAr != "" && (c.Default == language.Arabic || title == "") {
		title = c.TitleAr
	}
	if title != "" {
		dc.Title.Set(xDefault, title)
	}
	if c.Author != "" {
		dc.Creator.Append(xmp.NewProperName(c.Author))
	}
	if c.Description != "" {
		dc.Description.Set(xDefault, c.Description)
	}

	basic := &xmp.Basic{}
	if !c.IssuedAt.IsZero() {
		basic.CreateDate = xmp.NewDate(c.IssuedAt)
		basic.ModifyDate = xmp.NewDate(c.IssuedAt)
	}

	pdfInfo := &PDF{}
	if c.Keywords != "" {
		pdfInfo.Keywords = xmp.NewText(c.Keywords)
	}
	if c.Producer != "" {
		pdfInfo.Producer = xmp.NewAgentName(c.Producer)
	}

	id := "uuid:" + DocumentID(c.Number).String()
	mm := &MM{
		DocumentID: xmp.NewText(id),
		InstanceID: xmp.NewText(id),
	}

	titles := &Titles{}
	if c.Number != "" {
		titles.Number = xmp.NewText(c.Number)
	}
	if c.TitleAr != "" {
		titles.TitleAr = xmp.NewText(c.TitleAr)
	}
	if c.TitleEn != "" {
		titles.TitleEn = xmp.NewText(c.TitleEn)
	}

	packet := xmp.NewPacket()
	err := packet.Set(dc, basic, pdfInfo, mm, titles)
	if err != nil {
		return nil, err
	}
	return packet, nil
}

// Build returns the serialized XMP packet describing c.
func Build(c *Certificate) ([]byte, error) {
	packet, err := Packet(c)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	err = packet.Write(buf, &xmp.PacketOptions{Pretty: true})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

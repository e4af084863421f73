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

package certificate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/certpdf/layout"
)

// ErrNoData is returned when an input document is empty or null.
var ErrNoData = errors.New("certificate: no data")

// DecodeError is returned when an input document cannot be parsed.
type DecodeError struct {
	What string
	Err  error
}

func (err *DecodeError) Error() string {
	return "certificate: invalid " + err.What + ": " + err.Err.Error()
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}

// Request bundles the inputs for rendering one certificate.
type Request struct {
	Certificate *Certificate
	Template    *Template

	// Locale is the requested language tag, or the empty string.
	Locale string
}

// Parse decodes a JSON or YAML document into a generic map.  Documents
// starting with '{' are read as JSON, everything else as YAML.
func Parse(data []byte) (map[string]any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrNoData
	}

	var m map[string]any
	if data[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err := dec.Decode(&m)
		if err != nil {
			return nil, err
		}
	} else {
		err := yaml.Unmarshal(data, &m)
		if err != nil {
			return nil, err
		}
	}
	if m == nil {
		return nil, ErrNoData
	}
	return m, nil
}

// ReadRequest reads a render request from r.  The document has the keys
// "certificate", "template" and, optionally, "locale".
func ReadRequest(r io.Reader) (*Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, &DecodeError{What: "request", Err: err}
	}
	return RequestFromMap(m)
}

// RequestFromMap converts a generic map into a render request.
func RequestFromMap(m map[string]any) (*Request, error) {
	req := &Request{}

	cm, ok := asMap(m["certificate"])
	if !ok {
		return nil, &DecodeError{What: "request", Err: errors.New("missing certificate")}
	}
	cert, err := FromMap(cm)
	if err != nil {
		return nil, err
	}
	req.Certificate = cert

	tm, ok := asMap(m["template"])
	if !ok {
		return nil, &DecodeError{What: "request", Err: errors.New("missing template")}
	}
	tmpl, err := TemplateFromMap(tm)
	if err != nil {
		return nil, err
	}
	req.Template = tmpl

	req.Locale = stringValue(m["locale"])
	return req, nil
}

// ReadCertificate reads a certificate record from a JSON or YAML document.
func ReadCertificate(r io.Reader) (*Certificate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, &DecodeError{What: "certificate", Err: err}
	}
	return FromMap(m)
}

// ReadTemplate reads a template record from a JSON or YAML document.
func ReadTemplate(r io.Reader) (*Template, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, &DecodeError{What: "template", Err: err}
	}
	return TemplateFromMap(m)
}

// FromMap converts a generic map, as obtained from a JSON or YAML document
// or from a database record, into a certificate.
//
// Student and course may either be given directly, as "studentName" and
// "courseName", or as embedded "student" and "course" records with a
// "name" or "title" field.
func FromMap(m map[string]any) (*Certificate, error) {
	if m == nil {
		return nil, &DecodeError{What: "certificate", Err: ErrNoData}
	}

	c := &Certificate{
		Number:     stringValue(first(m, "certificateNumber", "number")),
		TemplateID: refID(first(m, "templateId", "template")),
	}
	c.StudentName = textValue(m["studentName"])
	if c.StudentName.IsEmpty() {
		c.StudentName = embeddedText(m["student"], "name", "fullName")
	}
	c.CourseName = textValue(m["courseName"])
	if c.CourseName.IsEmpty() {
		c.CourseName = embeddedText(m["course"], "title", "name")
	}

	issued, err := timeValue(first(m, "issuedAt", "issuedDate", "createdAt"))
	if err != nil {
		return nil, &DecodeError{What: "certificate", Err: err}
	}
	c.IssuedAt = issued
	return c, nil
}

// TemplateFromMap converts a generic map into a template.
func TemplateFromMap(m map[string]any) (*Template, error) {
	if m == nil {
		return nil, &DecodeError{What: "template", Err: ErrNoData}
	}

	t := &Template{
		ID:              refID(first(m, "_id", "id")),
		Orientation:     stringValue(m["orientation"]),
		Paper:           stringValue(m["paper"]),
		BackgroundImage: stringValue(m["backgroundImage"]),
	}
	if w, ok := layout.Number(m["width"]); ok {
		t.Width = w
	}
	if h, ok := layout.Number(m["height"]); ok {
		t.Height = h
	}

	ph, ok := asMap(m["placeholders"])
	if !ok {
		if m["placeholders"] != nil {
			return nil, &DecodeError{What: "template", Err: errors.New("placeholders must be a map")}
		}
		return t, nil
	}

	p := &t.Placeholders
	p.StudentName = slotValue(ph, "studentName")
	p.CourseName = slotValue(ph, "courseName")
	p.IssuedDate = slotValue(ph, "issuedDate")
	p.CertificateNumber = slotValue(ph, "certificateNumber")
	p.QRCode = slotValue(ph, "qrCode")
	p.CustomText = slotList(ph["customText"])
	p.Images = slotList(ph["images"])
	return t, nil
}

func first(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func asMap(v any) (map[string]any, bool) {
	switch v := v.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		m := make(map[string]any, len(v))
		for key, val := range v {
			m[fmt.Sprint(key)] = val
		}
		return m, true
	default:
		return nil, false
	}
}

func slotValue(m map[string]any, key string) Slot {
	v, ok := m[key]
	if !ok {
		return Absent()
	}
	if v == nil {
		return Null()
	}
	raw, _ := asMap(v)
	return NewSlot(layout.Raw(raw))
}

func slotList(v any) []Slot {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	res := make([]Slot, len(list))
	for i, elem := range list {
		if elem == nil {
			res[i] = Null()
			continue
		}
		raw, _ := asMap(elem)
		res[i] = NewSlot(layout.Raw(raw))
	}
	return res
}

func stringValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func textValue(v any) Text {
	if m, ok := asMap(v); ok {
		ar, _ := m["ar"].(string)
		en, _ := m["en"].(string)
		return Bilingual(ar, en)
	}
	return PlainText(stringValue(v))
}

// embeddedText reads a text field from an embedded record.  A plain
// string is used as the text itself.
func embeddedText(v any, keys ...string) Text {
	m, ok := asMap(v)
	if !ok {
		if s, isString := v.(string); isString {
			return PlainText(strings.TrimSpace(s))
		}
		return Text{}
	}
	for _, key := range keys {
		if t := textValue(m[key]); !t.IsEmpty() {
			return t
		}
	}
	return Text{}
}

// refID returns the ID of a referenced record, which is either given
// directly or as an embedded record.
func refID(v any) string {
	if m, ok := asMap(v); ok {
		return stringValue(first(m, "_id", "id"))
	}
	return stringValue(v)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// timeValue converts a timestamp.  Numbers are taken as milliseconds since
// the Unix epoch.  The extended JSON form {"$date": ...} is accepted.
func timeValue(v any) (time.Time, error) {
	if m, ok := asMap(v); ok {
		v = m["$date"]
	}
	switch v := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, nil
		}
		for _, l := range timeLayouts {
			if t, err := time.Parse(l, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("invalid time %q", s)
	}
	ms, ok := layout.Number(v)
	if !ok || math.Abs(ms) > 1e15 {
		return time.Time{}, fmt.Errorf("invalid time %v", v)
	}
	return time.UnixMilli(int64(ms)).UTC(), nil
}

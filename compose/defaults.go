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
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"seehuhn.de/go/certpdf/certificate"
	"seehuhn.de/go/certpdf/fontcache"
	"seehuhn.de/go/certpdf/layout"
)

// Fixed texts of the built-in layout.
const (
	titleAr = "شهادة إتمام"
	titleEn = "Certificate of Completion"
)

type label struct {
	ar, en string
}

func (l label) in(locale language.Tag) string {
	if locale == language.English {
		return l.en
	}
	return l.ar
}

var (
	defaultStudent = label{"اسم الطالب", "Student Name"}
	defaultCourse  = label{"اسم الدورة", "Course Name"}
	certifyLabel   = label{"يشهد بأن", "This is to certify that"}
	completedLabel = label{"قد أتم بنجاح دورة", "has successfully completed the course"}
	dateLabel      = label{"تاريخ الإصدار", "Issue Date"}
	numberLabel    = label{"رقم الشهادة", "Certificate No."}
)

func titleFor(locale language.Tag) string {
	if locale == language.English {
		return titleEn
	}
	return titleAr
}

var arabicMonths = [12]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// formatDate formats the issue date of a certificate.  Arabic dates use
// Arabic-Indic digits, e.g. "١٥ مارس ٢٠٢٤".
func formatDate(t time.Time, locale language.Tag) string {
	if locale == language.English {
		return t.Format("January 2, 2006")
	}
	return arabicDigits(strconv.Itoa(t.Day())) + " " +
		arabicMonths[t.Month()-1] + " " +
		arabicDigits(strconv.Itoa(t.Year()))
}

func arabicDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r - '0' + '٠'
		}
		return r
	}, s)
}

// values holds the resolved texts of the standard fields.
type values struct {
	studentName string
	courseName  string
	issuedDate  string
	number      string
}

func (pg *page) values(cert *certificate.Certificate, issued time.Time) *values {
	return &values{
		studentName: cert.StudentName.Resolve(pg.locale, defaultStudent.ar, defaultStudent.en),
		courseName:  cert.CourseName.Resolve(pg.locale, defaultCourse.ar, defaultCourse.en),
		issuedDate:  formatDate(issued, pg.locale),
		number:      strings.TrimSpace(cert.Number),
	}
}

// drawDefaultLayout draws the built-in certificate layout: a bilingual
// title, the student and course names in the middle of the page, and the
// issue date and certificate number at the bottom.
func (pg *page) drawDefaultLayout(v *values) {
	w, h := pg.width, pg.height
	scale := min(w/certificate.DefaultWidth, h/certificate.DefaultHeight)

	text := func(s string, x, y, size float64, weight, color string) {
		pg.drawText(s, &layout.Placeholder{
			X:          x,
			Y:          y,
			FontSize:   size * scale,
			FontFamily: fontcache.DefaultFamily,
			Color:      color,
			Align:      layout.Center,
			FontWeight: weight,
		})
	}
	const (
		dark  = "#1f2937"
		muted = "#4b5563"
		gold  = "#8a6d1f"
	)

	text(titleAr, w/2, 0.12*h, 40, "bold", gold)
	text(titleEn, w/2, 0.21*h, 26, "normal", gold)

	text(certifyLabel.in(pg.locale), w/2, 0.33*h, 18, "normal", muted)
	text(v.studentName, w/2, 0.42*h, 36, "bold", dark)
	text(completedLabel.in(pg.locale), w/2, 0.54*h, 18, "normal", muted)
	text(v.courseName, w/2, 0.62*h, 28, "bold", dark)

	text(dateLabel.in(pg.locale), 0.25*w, 0.78*h, 14, "normal", muted)
	text(v.issuedDate, 0.25*w, 0.84*h, 16, "semibold", dark)
	if v.number != "" {
		text(numberLabel.in(pg.locale), 0.75*w, 0.78*h, 14, "normal", muted)
		text(v.number, 0.75*w, 0.84*h, 16, "semibold", dark)
	}
}

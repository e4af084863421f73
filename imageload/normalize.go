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

package imageload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"seehuhn.de/go/icc"

	"seehuhn.de/go/certpdf/canvas"
)

// MaxDimension limits the width and height of normalized images.  Larger
// images are scaled down, preserving the aspect ratio.
const MaxDimension = 4000

// MaxPixels limits the number of pixels of an image which is decoded.
// Images above the limit are rejected before any pixel data is allocated.
const MaxPixels = 50_000_000

var (
	// ErrEmpty is returned when an image source yields no data.
	ErrEmpty = errors.New("imageload: empty image")

	// ErrTooManyPixels is returned for images larger than [MaxPixels].
	ErrTooManyPixels = errors.New("imageload: too many pixels")
)

// Image is an image in a format which can be embedded into a document.
type Image struct {
	Data          []byte
	Format        canvas.ImageFormat
	Width, Height int
}

// Normalize converts encoded image data into a form which can be embedded
// into a document.  Gray and RGB JPEG images within the size limit are used
// unchanged, unless they carry an ICC profile for a different color space.
// All other images (PNG, GIF, WebP, BMP, TIFF and CMYK JPEG) are decoded
// and re-encoded as 8-bit RGBA PNG.
func Normalize(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imageload: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}
	if format == "jpeg" && cfg.Width <= MaxDimension && cfg.Height <= MaxDimension &&
		jpegEmbeddable(data, cfg) {
		return &Image{
			Data:   data,
			Format: canvas.JPEG,
			Width:  cfg.Width,
			Height: cfg.Height,
		}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imageload: decode %s: %w", format, err)
	}
	var rgba *image.NRGBA
	b := img.Bounds()
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		rgba = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	} else {
		rgba = imaging.Clone(img)
	}

	buf := &bytes.Buffer{}
	err = imaging.Encode(buf, rgba, imaging.PNG)
	if err != nil {
		return nil, fmt.Errorf("imageload: encode: %w", err)
	}
	return &Image{
		Data:   buf.Bytes(),
		Format: canvas.PNG,
		Width:  rgba.Bounds().Dx(),
		Height: rgba.Bounds().Dy(),
	}, nil
}

// jpegEmbeddable reports whether JPEG data can be embedded unchanged.  The
// color model must be gray or YCbCr, and an embedded ICC profile must
// describe a gray or RGB color space.
func jpegEmbeddable(data []byte, cfg image.Config) bool {
	if cfg.ColorModel == color.CMYKModel {
		return false
	}
	profile := jpegProfile(data)
	if profile == nil {
		return true
	}
	p, err := icc.Decode(profile)
	if err != nil {
		return false
	}
	return p.ColorSpace == icc.RGBSpace || p.ColorSpace == icc.GraySpace
}

// iccSignature starts the APP2 segments which hold an ICC profile.
const iccSignature = "ICC_PROFILE\x00"

// jpegProfile returns the ICC profile stored in the APP2 segments of a
// JPEG file, or nil if there is none.
func jpegProfile(data []byte) []byte {
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil
	}

	chunks := make(map[byte][]byte)
	pos := 2
	for pos+4 <= len(data) && data[pos] == 0xFF {
		marker := data[pos+1]
		switch {
		case marker == 0xFF: // fill byte
			pos++
			continue
		case marker == 0xDA || marker == 0xD9: // start of scan, end of image
			pos = len(data)
			continue
		case marker == 0x01 || marker >= 0xD0 && marker <= 0xD7:
			pos += 2
			continue
		}

		n := int(data[pos+2])<<8 | int(data[pos+3])
		if n < 2 || pos+2+n > len(data) {
			break
		}
		seg := data[pos+4 : pos+2+n]
		if marker == 0xE2 && len(seg) > len(iccSignature)+2 &&
			string(seg[:len(iccSignature)]) == iccSignature {
			chunks[seg[len(iccSignature)]] = seg[len(iccSignature)+2:]
		}
		pos += 2 + n
	}
	if len(chunks) == 0 {
		return nil
	}

	var profile []byte
	for seq := 1; seq < 256; seq++ {
		profile = append(profile, chunks[byte(seq)]...)
	}
	return profile
}

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

import "errors"

// InputError is returned when the inputs of a render call are missing or
// unusable.  No document is produced in this case.
type InputError struct {
	Msg string
}

func (err *InputError) Error() string {
	return "compose: invalid input: " + err.Msg
}

// GenerationError is returned when the document cannot be constructed or
// serialized.
type GenerationError struct {
	Err error
}

func (err *GenerationError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	return "compose: certificate generation failed" + middle
}

func (err *GenerationError) Unwrap() error {
	return err.Err
}

// IsInputError reports whether err is or wraps an [InputError].
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

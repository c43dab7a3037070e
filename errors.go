/*
Copyright © 2020 the imd-grd-to-nc authors.
This file is part of imd-grd-to-nc.

imd-grd-to-nc is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

imd-grd-to-nc is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with imd-grd-to-nc.  If not, see <http://www.gnu.org/licenses/>.
*/

package imdgrd

import "errors"

// These errors are returned, wrapped with details, by the conversion steps.
// Use errors.Is to test for them.
var (
	ErrNoInput          = errors.New("imdgrd: no input file specified (-i)")
	ErrInputNotFound    = errors.New("imdgrd: input file does not exist")
	ErrInvalidSize      = errors.New("imdgrd: invalid input file size")
	ErrInvalidKind      = errors.New("imdgrd: invalid data type specified")
	ErrAmbiguousKind    = errors.New("imdgrd: temperature data detected, but can not detect whether it is min or max data")
	ErrKindMismatch     = errors.New("imdgrd: specified data type does not match detected data type")
	ErrInvalidYear      = errors.New("imdgrd: invalid year specified")
	ErrMissingYear      = errors.New("imdgrd: please specify a year for the input data (-y)")
	ErrCalendarMismatch = errors.New("imdgrd: number of days does not match year")
	ErrOutputExists     = errors.New("imdgrd: output file exists")
	ErrShortRead        = errors.New("imdgrd: short read from input file")
	ErrWrite            = errors.New("imdgrd: writing NetCDF file")
	ErrVerify           = errors.New("imdgrd: verifying NetCDF file")
)

var reasons = []struct {
	err    error
	reason string
}{
	{ErrNoInput, "no_input"},
	{ErrInputNotFound, "input_not_found"},
	{ErrInvalidSize, "invalid_size"},
	{ErrInvalidKind, "invalid_kind"},
	{ErrAmbiguousKind, "ambiguous_kind"},
	{ErrKindMismatch, "kind_mismatch"},
	{ErrInvalidYear, "invalid_year"},
	{ErrMissingYear, "missing_year"},
	{ErrCalendarMismatch, "calendar_mismatch"},
	{ErrOutputExists, "output_exists"},
	{ErrShortRead, "short_read"},
	{ErrWrite, "write"},
	{ErrVerify, "verify"},
}

// Reason returns a short, stable label for the failure class of err,
// suitable for use as a metric label. It returns "" for a nil error
// and "other" for errors that are not from this package.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return "other"
}

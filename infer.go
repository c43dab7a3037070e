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

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

var (
	minPattern  = regexp.MustCompile(`(?i)min`)
	maxPattern  = regexp.MustCompile(`(?i)max`)
	yearPattern = regexp.MustCompile(`[0-9]{4}`)
)

// InputProbe holds what can be learned about a GRD file without
// reading its contents.
type InputProbe struct {
	Filename string
	Size     int64

	// Kind is Rain or Temp from the file size, refined to MinTemp
	// or MaxTemp if the file name says so.
	Kind Kind

	// Days is the number of days in the file, from its size.
	Days int

	// Year is the first four-digit number in the file name. It is only
	// meaningful if YearFound is true.
	Year      int
	YearFound bool
}

// Probe checks that the file exists and infers its kind, number of
// days and year from its size and name.
func Probe(filename string) (*InputProbe, error) {
	if filename == "" {
		return nil, ErrNoInput
	}
	fi, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, filename)
	}
	kind, days, err := Classify(fi.Size())
	if err != nil {
		return nil, err
	}
	p := &InputProbe{
		Filename: filename,
		Size:     fi.Size(),
		Kind:     InferKind(filename, kind),
		Days:     days,
	}
	p.Year, p.YearFound = InferYear(filename)
	return p, nil
}

// InferKind refines temperature data to MinTemp or MaxTemp when the
// path contains "min" or "max" (in any case). If both are present, MaxTemp
// wins. Kinds other than Temp are returned unchanged.
func InferKind(path string, k Kind) Kind {
	if k != Temp {
		return k
	}
	if minPattern.MatchString(path) {
		k = MinTemp
	}
	if maxPattern.MatchString(path) {
		k = MaxTemp
	}
	return k
}

// InferYear returns the first run of four digits in path.
// The value is not range checked.
func InferYear(path string) (int, bool) {
	m := yearPattern.FindString(path)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return y, true
}

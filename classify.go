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

import "fmt"

type sizeClass struct {
	kind Kind
	days int
}

// fileSizes maps the byte size of each kind of GRD file to its contents,
// e.g. for rainfall over a 365 day year, 129 * 135 * 4 * 365 + 1 = 25425901.
var fileSizes = map[int64]sizeClass{
	25425901: {kind: Rain, days: 365},
	25495561: {kind: Rain, days: 366},
	1403061:  {kind: Temp, days: 365},
	1406905:  {kind: Temp, days: 366},
}

// Classify returns the kind of data (Rain or Temp) and the number
// of days held in a GRD file of the given size in bytes.
func Classify(size int64) (Kind, int, error) {
	c, ok := fileSizes[size]
	if !ok {
		return Unspecified, 0, fmt.Errorf("%w: %d bytes", ErrInvalidSize, size)
	}
	return c.kind, c.days, nil
}

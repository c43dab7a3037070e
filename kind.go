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

// Kind is the category of data held in a GRD file.
type Kind int

const (
	// Unspecified means the kind has not been given or detected.
	Unspecified Kind = iota
	// Rain is daily rainfall.
	Rain
	// Temp is daily temperature, where it is not known whether
	// the values are minima or maxima.
	Temp
	// MinTemp is daily minimum temperature.
	MinTemp
	// MaxTemp is daily maximum temperature.
	MaxTemp
)

type kindInfo struct {
	name, ncVar, ncUnits string
}

var kinds = map[Kind]kindInfo{
	Unspecified: {name: "unspecified"},
	Rain:        {name: "rain", ncVar: "rainfall", ncUnits: "mm"},
	Temp:        {name: "temp", ncVar: "temp", ncUnits: "celsius"},
	MinTemp:     {name: "mintemp", ncVar: "min_temp", ncUnits: "celsius"},
	MaxTemp:     {name: "maxtemp", ncVar: "max_temp", ncUnits: "celsius"},
}

// ValidKinds lists the kinds that can be requested explicitly.
var ValidKinds = []Kind{Rain, MinTemp, MaxTemp}

func (k Kind) String() string {
	if i, ok := kinds[k]; ok {
		return i.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsTemperature returns whether k is any of the temperature kinds.
func (k Kind) IsTemperature() bool {
	return k == Temp || k == MinTemp || k == MaxTemp
}

// DefaultVariable returns the NetCDF variable name used for k when
// none is given.
func (k Kind) DefaultVariable() string { return kinds[k].ncVar }

// DefaultUnits returns the units used for k when none are given.
func (k Kind) DefaultUnits() string { return kinds[k].ncUnits }

// ParseKind parses an explicitly requested data type. Only "rain",
// "mintemp" and "maxtemp" are accepted.
func ParseKind(s string) (Kind, error) {
	for _, k := range ValidKinds {
		if s == k.String() {
			return k, nil
		}
	}
	return Unspecified, fmt.Errorf("%w: %s\nValid data types: rain, mintemp, maxtemp", ErrInvalidKind, s)
}

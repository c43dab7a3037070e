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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferKind(t *testing.T) {
	tests := []struct {
		path string
		in   Kind
		want Kind
	}{
		{"Mintemp_MIN_2001.GRD", Temp, MinTemp},
		{"Maxtemp_MAX_2001.GRD", Temp, MaxTemp},
		{"data/MAXIMUM/min_2001.grd", Temp, MaxTemp},
		{"temp_2001.grd", Temp, Temp},
		{"min/temp_2001.grd", Temp, MinTemp},
		{"rain_min_2001.grd", Rain, Rain},
		{"max.grd", Unspecified, Unspecified},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, InferKind(test.path, test.in), test.path)
	}
}

func TestInferYear(t *testing.T) {
	tests := []struct {
		path  string
		year  int
		found bool
	}{
		{"data_1987.grd", 1987, true},
		{"19990101x.grd", 1999, true},
		{"/data/2010/rain_2001.grd", 2010, true},
		{"rain_0012.grd", 12, true},
		{"rain_201.grd", 0, false},
		{"rain.grd", 0, false},
	}
	for _, test := range tests {
		y, found := InferYear(test.path)
		assert.Equal(t, test.year, y, test.path)
		assert.Equal(t, test.found, found, test.path)
	}
}

func TestProbe(t *testing.T) {
	dir := workDir(t)

	t.Run("rain", func(t *testing.T) {
		path := emptyFile(t, dir, "imd_rain_2001.grd", 25425901)
		p, err := Probe(path)
		require.NoError(t, err)
		assert.Equal(t, &InputProbe{
			Filename:  path,
			Size:      25425901,
			Kind:      Rain,
			Days:      365,
			Year:      2001,
			YearFound: true,
		}, p)
	})

	t.Run("maxtemp", func(t *testing.T) {
		path := emptyFile(t, dir, "Maxtemp_MaxT_2004.GRD", 1406905)
		p, err := Probe(path)
		require.NoError(t, err)
		assert.Equal(t, MaxTemp, p.Kind)
		assert.Equal(t, 366, p.Days)
		assert.Equal(t, 2004, p.Year)
	})

	t.Run("no year", func(t *testing.T) {
		path := emptyFile(t, dir, "temp.grd", 1403061)
		p, err := Probe(path)
		require.NoError(t, err)
		assert.Equal(t, Temp, p.Kind)
		assert.False(t, p.YearFound)
	})

	t.Run("no input", func(t *testing.T) {
		_, err := Probe("")
		assert.ErrorIs(t, err, ErrNoInput)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := Probe(filepath.Join(dir, "nothere_2001.grd"))
		assert.ErrorIs(t, err, ErrInputNotFound)
	})

	t.Run("invalid size", func(t *testing.T) {
		path := emptyFile(t, dir, "short_2001.grd", 1000)
		_, err := Probe(path)
		assert.ErrorIs(t, err, ErrInvalidSize)
	})
}

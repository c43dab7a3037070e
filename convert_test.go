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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertRain(t *testing.T) {
	dir := workDir(t)
	in := writeGRD(t, dir, "imd_rain_2001.grd", Rain, 365, func(i int) float32 {
		if i%7 == 0 {
			return -999
		}
		return float32(i % 300)
	})
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	clock := clockwork.NewFakeClockAt(time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC))

	r, err := Convert(JobOptions{Infile: in}, ConvertConfig{Log: logger, Clock: clock, Verify: true})
	require.NoError(t, err)

	assert.Equal(t, Rain, r.Job.Kind)
	assert.Equal(t, 2001, r.Job.Year)
	assert.Equal(t, 365, r.Job.Days)
	assert.True(t, r.Job.YearFromFilename)
	assert.Equal(t, filepath.Join(dir, "imd_rain_2001.nc"), r.Output.Filename)
	assert.Equal(t, "rainfall", r.Output.Variable)
	assert.Equal(t, "mm", r.Output.Units)
	assert.Equal(t, int64(25425901), r.BytesRead)
	assert.Equal(t, 0.0, r.Stats.Min)
	assert.Equal(t, 299.0, r.Stats.Max)
	assert.Equal(t, 365*129*135, r.Stats.Valid+r.Stats.Missing)

	nc := readNC(t, r.Output.Filename, "rainfall")
	assert.Equal(t, int64(365), nc.recs)
	require.Len(t, nc.lat, 129)
	require.Len(t, nc.lon, 135)
	for i, v := range nc.lat {
		assert.Equal(t, float32(6.5+float64(i)*0.25), v)
	}
	for j, v := range nc.lon {
		assert.Equal(t, float32(66.5+float64(j)*0.25), v)
	}
	assert.Equal(t, float32(364), nc.time[364])
	assert.Equal(t, float32(-999), nc.data[0])
	assert.Equal(t, float32(1), nc.data[1])
	assert.Equal(t, float32((365*129*135-1)%300), nc.data[len(nc.data)-1])
	assert.Equal(t, []float32{-999}, nc.h.GetAttribute("rainfall", "_FillValue"))
	assert.Equal(t, "days since 2001-1-1 0:0:0", nc.h.GetAttribute(TimeVar, "units"))
	assert.Equal(t, "imd_rain_2001.grd", nc.h.GetAttribute("", "source"))
	assert.Regexp(t, `^fnv128a:[0-9a-f]{32}$`, nc.h.GetAttribute("", "source_checksum"))
	assert.Equal(t, "2020-06-01T12:00:00Z imdgrd2nc "+Version, nc.h.GetAttribute("", "history"))

	var msgs []string
	for _, e := range hook.AllEntries() {
		msgs = append(msgs, e.Message)
	}
	assert.Contains(t, msgs, "converting")
	assert.Contains(t, msgs, "conversion complete")
}

func TestConvertTemperature(t *testing.T) {
	dir := workDir(t)
	in := writeGRD(t, dir, "Mintemp_MinT_2004.GRD", Temp, 366, constant(21.5))
	out := filepath.Join(dir, "out", "tmin.nc")
	require.NoError(t, os.Mkdir(filepath.Dir(out), 0755))
	logger, _ := logtest.NewNullLogger()

	r, err := Convert(JobOptions{Infile: in, Outfile: out, NCVar: "tmin", NCUnits: "degC"},
		ConvertConfig{Log: logger, Verify: true})
	require.NoError(t, err)
	assert.Equal(t, MinTemp, r.Job.Kind)
	assert.Equal(t, 2004, r.Job.Year)

	nc := readNC(t, out, "tmin")
	assert.Equal(t, int64(366), nc.recs)
	assert.Equal(t, "degC", nc.h.GetAttribute("tmin", "units"))
	assert.Equal(t, []float32{99.9}, nc.h.GetAttribute("tmin", "_FillValue"))
	assert.Equal(t, float32(7.5), nc.lat[0])
	assert.Equal(t, float32(67.5), nc.lon[0])
	assert.Equal(t, float32(21.5), nc.data[366*961-1])
}

func TestConvertErrors(t *testing.T) {
	dir := workDir(t)
	logger, _ := logtest.NewNullLogger()
	cfg := ConvertConfig{Log: logger}

	temp := writeGRD(t, dir, "temp_2001.grd", Temp, 365, constant(1))
	rain := emptyFile(t, dir, "rain.grd", 25425901)
	leap := emptyFile(t, dir, "rain_2004.grd", 25425901)
	existing := emptyFile(t, dir, "exists.nc", 1)

	tests := []struct {
		name string
		opts JobOptions
		err  error
	}{
		{"no input", JobOptions{}, ErrNoInput},
		{"missing input", JobOptions{Infile: filepath.Join(dir, "none.grd")}, ErrInputNotFound},
		{"ambiguous", JobOptions{Infile: temp}, ErrAmbiguousKind},
		{"mismatch", JobOptions{Infile: temp, Kind: Rain}, ErrKindMismatch},
		{"no year", JobOptions{Infile: rain}, ErrMissingYear},
		{"calendar", JobOptions{Infile: leap}, ErrCalendarMismatch},
		{"exists", JobOptions{Infile: rain, Year: 2001, Outfile: existing}, ErrOutputExists},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Convert(test.opts, cfg)
			assert.ErrorIs(t, err, test.err)
		})
	}

	b, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Len(t, b, 1, "existing output must not be touched")
}

func TestConvertClobber(t *testing.T) {
	dir := workDir(t)
	in := writeGRD(t, dir, "maxtemp_2001.grd", Temp, 365, constant(30))
	out := emptyFile(t, dir, "maxtemp_2001.nc", 1)
	logger, _ := logtest.NewNullLogger()

	r, err := Convert(JobOptions{Infile: in, Clobber: true}, ConvertConfig{Log: logger, Verify: true})
	require.NoError(t, err)
	assert.Equal(t, out, r.Output.Filename)
	assert.Equal(t, "max_temp", r.Output.Variable)
	nc := readNC(t, out, "max_temp")
	assert.Equal(t, int64(365), nc.recs)
}

func TestReadGridShortRead(t *testing.T) {
	// The file shrank after it was classified.
	dir := workDir(t)
	in := emptyFile(t, dir, "rain_2001.grd", 1000)
	job := &ResolvedJob{Filename: in, Size: 25425901, Days: 365, Kind: Rain, Year: 2001}
	ds, err := ReadGrid(job)
	assert.ErrorIs(t, err, ErrShortRead)
	assert.Nil(t, ds)
}

func TestConvertVerifyFailed(t *testing.T) {
	dir := workDir(t)
	in := writeGRD(t, dir, "maxtemp_2001.grd", Temp, 365, constant(30))
	logger, _ := logtest.NewNullLogger()
	verify = func(*OutputTarget, *GriddedDataset) error { return ErrVerify }
	defer func() { verify = Verify }()

	r, err := Convert(JobOptions{Infile: in}, ConvertConfig{Log: logger, Verify: true})
	assert.ErrorIs(t, err, ErrVerify)
	require.NotNil(t, r.Output)
	assert.NoFileExists(t, r.Output.Filename)
}

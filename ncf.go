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

	"github.com/ctessum/cdf"
)

// Names of the NetCDF dimensions and coordinate variables.
const (
	TimeVar = "time"
	LatVar  = "latitude"
	LonVar  = "longitude"
)

const (
	calendar = "standard"
	latUnits = "degrees_north"
	lonUnits = "degrees_east"
)

// Attribute is a global text attribute of an output file.
type Attribute struct {
	Name, Value string
}

// TimeUnits returns the units of the time coordinate for the given year.
func TimeUnits(year int) string {
	return fmt.Sprintf("days since %d-1-1 0:0:0", year)
}

// WriteNetCDF writes ds to the NetCDF file described by out, with the time
// dimension as the record dimension. If anything goes wrong after the
// file has been created, the partial file is removed.
// The output is in the uncompressed NetCDF classic format.
func WriteNetCDF(out *OutputTarget, ds *GriddedDataset, global ...Attribute) (err error) {
	switch out.Variable {
	case "":
		return fmt.Errorf("%w: no variable name", ErrWrite)
	case TimeVar, LatVar, LonVar:
		return fmt.Errorf("%w: variable name %q is already used for a coordinate", ErrWrite, out.Variable)
	}
	seen := make(map[string]bool)
	for _, a := range global {
		if seen[a.Name] {
			return fmt.Errorf("%w: repeated global attribute %q", ErrWrite, a.Name)
		}
		seen[a.Name] = true
	}

	h := newHeader(out, ds, global)
	if errs := h.Check(); len(errs) > 0 {
		return fmt.Errorf("%w: invalid header: %v", ErrWrite, errs[0])
	}

	ff, err := os.Create(out.Filename)
	if err != nil {
		return fmt.Errorf("%w: creating file: %v", ErrWrite, err)
	}
	defer func() {
		if cerr := ff.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%w: closing file: %v", ErrWrite, cerr)
		}
		if err != nil {
			os.Remove(out.Filename)
		}
	}()

	f, err := cdf.Create(ff, h) // writes the header to ff
	if err != nil {
		return fmt.Errorf("%w: writing header: %v", ErrWrite, err)
	}
	for _, v := range []struct {
		name string
		data []float32
	}{
		{LatVar, ds.Lats},
		{LonVar, ds.Lons},
		{TimeVar, ds.Days},
		{out.Variable, ds.Data},
	} {
		if err := writeNCF(f, v.name, v.data); err != nil {
			return fmt.Errorf("%w: setting %s values: %v", ErrWrite, v.name, err)
		}
	}
	if err := cdf.UpdateNumRecs(ff); err != nil {
		return fmt.Errorf("%w: updating record count: %v", ErrWrite, err)
	}
	return nil
}

func newHeader(out *OutputTarget, ds *GriddedDataset, global []Attribute) *cdf.Header {
	h := cdf.NewHeader(
		[]string{TimeVar, LatVar, LonVar},
		[]int{0, ds.Geometry.Height, ds.Geometry.Width})
	for _, a := range global {
		h.AddAttribute("", a.Name, a.Value)
	}

	h.AddVariable(TimeVar, []string{TimeVar}, []float32{0})
	h.AddAttribute(TimeVar, "units", TimeUnits(ds.Year))
	h.AddAttribute(TimeVar, "calendar", calendar)

	h.AddVariable(LatVar, []string{LatVar}, []float32{0})
	h.AddAttribute(LatVar, "units", latUnits)

	h.AddVariable(LonVar, []string{LonVar}, []float32{0})
	h.AddAttribute(LonVar, "units", lonUnits)

	h.AddVariable(out.Variable, []string{TimeVar, LatVar, LonVar}, []float32{0})
	h.AddAttribute(out.Variable, "units", out.Units)
	h.AddAttribute(out.Variable, "_FillValue", []float32{ds.Fill})
	if s := ds.Stats(); s.Valid > 0 {
		h.AddAttribute(out.Variable, "actual_range", []float32{float32(s.Min), float32(s.Max)})
	}

	h.Define()
	return h
}

func writeNCF(f *cdf.File, v string, data []float32) error {
	var begin, end []int
	if !f.Header.IsRecordVariable(v) {
		end = f.Header.Lengths(v)
		begin = make([]int, len(end))
	}
	n, err := f.Writer(v, begin, end).Write(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return fmt.Errorf("wrote %d of %d values", n, len(data))
	}
	return nil
}

// Verify reopens a file written by WriteNetCDF and checks that its
// dimensions, coordinates and fill value match ds. It does not remove
// a file that fails the check; Convert does.
func Verify(out *OutputTarget, ds *GriddedDataset) error {
	ff, err := os.Open(out.Filename)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerify, err)
	}
	defer ff.Close()
	fi, err := ff.Stat()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerify, err)
	}
	f, err := cdf.Open(ff)
	if err != nil {
		return fmt.Errorf("%w: reading header: %v", ErrVerify, err)
	}

	if n := f.Header.NumRecs(fi.Size()); n != int64(ds.NDays()) {
		return fmt.Errorf("%w: %s has %d records; expected %d", ErrVerify, TimeVar, n, ds.NDays())
	}
	for _, c := range []struct {
		name string
		want []float32
	}{
		{LatVar, ds.Lats},
		{LonVar, ds.Lons},
	} {
		got, err := readNCF(f, c.name, len(c.want))
		if err != nil {
			return fmt.Errorf("%w: reading %s: %v", ErrVerify, c.name, err)
		}
		for i := range c.want {
			if got[i] != c.want[i] {
				return fmt.Errorf("%w: %s[%d] = %g; expected %g", ErrVerify, c.name, i, got[i], c.want[i])
			}
		}
	}
	dims := f.Header.Dimensions(out.Variable)
	if len(dims) != 3 || dims[0] != TimeVar || dims[1] != LatVar || dims[2] != LonVar {
		return fmt.Errorf("%w: variable %s has dimensions %v", ErrVerify, out.Variable, dims)
	}
	fill, ok := f.Header.GetAttribute(out.Variable, "_FillValue").([]float32)
	if !ok || len(fill) != 1 || fill[0] != ds.Fill {
		return fmt.Errorf("%w: variable %s has fill value %v; expected %g", ErrVerify, out.Variable, fill, ds.Fill)
	}
	return nil
}

// readNCF reads the first n values of the float variable v.
func readNCF(f *cdf.File, v string, n int) ([]float32, error) {
	r := f.Reader(v, nil, nil)
	if r == nil {
		return nil, fmt.Errorf("no variable %s", v)
	}
	buf, ok := r.Zero(n).([]float32)
	if !ok {
		return nil, fmt.Errorf("variable %s is not a float variable", v)
	}
	if _, err := r.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

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
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cemac/imd-grd-to-nc/internal/hash"
	"gonum.org/v1/gonum/floats"
)

// GridGeometry describes the spatial layout of a GRD file.
type GridGeometry struct {
	// Cell is the edge length of a grid cell in degrees.
	Cell float64

	// Width and Height are the number of longitudes and latitudes.
	Width, Height int

	// Lat0 and Lon0 are the coordinates of the first (south-west) cell.
	Lat0, Lon0 float64

	// Fill marks cells without data.
	Fill float32
}

var geometries = map[Kind]GridGeometry{
	Rain: {Cell: 0.25, Width: 135, Height: 129, Lat0: 6.5, Lon0: 66.5, Fill: -999},
	Temp: {Cell: 1, Width: 31, Height: 31, Lat0: 7.5, Lon0: 67.5, Fill: 99.9},
}

// GeometryFor returns the grid geometry for data of kind k. All
// temperature kinds share one geometry.
func GeometryFor(k Kind) GridGeometry {
	if k.IsTemperature() {
		return geometries[Temp]
	}
	return geometries[Rain]
}

// Lats returns the latitude of each grid row.
func (g GridGeometry) Lats() []float32 { return axis(g.Lat0, g.Cell, g.Height) }

// Lons returns the longitude of each grid column.
func (g GridGeometry) Lons() []float32 { return axis(g.Lon0, g.Cell, g.Width) }

func axis(v0, d float64, n int) []float32 {
	o := make([]float32, n)
	for i := range o {
		o[i] = float32(v0 + float64(i)*d)
	}
	return o
}

// GriddedDataset is the contents of a GRD file, ready to be written.
type GriddedDataset struct {
	Geometry GridGeometry
	Year     int

	// Days holds the time coordinate: 0, 1, ..., ndays-1.
	Days []float32
	Lats []float32
	Lons []float32

	// Data is ordered by day, then latitude, then longitude.
	Data []float32
	Fill float32

	// Checksum identifies the sample bytes the data was decoded from.
	// It is empty unless the dataset was read by ReadGrid.
	Checksum string
}

// NewDataset returns a dataset with coordinates filled in and space
// for the data of the given number of days.
func NewDataset(g GridGeometry, year, days int) *GriddedDataset {
	ds := &GriddedDataset{
		Geometry: g,
		Year:     year,
		Days:     make([]float32, days),
		Lats:     g.Lats(),
		Lons:     g.Lons(),
		Data:     make([]float32, days*g.Height*g.Width),
		Fill:     g.Fill,
	}
	for i := range ds.Days {
		ds.Days[i] = float32(i)
	}
	return ds
}

// NDays returns the number of days in the dataset.
func (ds *GriddedDataset) NDays() int { return len(ds.Days) }

// ReadGrid reads the GRD file described by job.
func ReadGrid(job *ResolvedJob) (*GriddedDataset, error) {
	g := GeometryFor(job.Kind)
	cells := job.Days * g.Height * g.Width
	if cells <= 0 {
		return nil, fmt.Errorf("%w: no days of data in %s", ErrInvalidSize, job.Filename)
	}
	width := int(job.Size / int64(cells))

	f, err := os.Open(job.Filename)
	if err != nil {
		return nil, fmt.Errorf("imdgrd: opening input file: %w", err)
	}
	defer f.Close()

	ds := NewDataset(g, job.Year, job.Days)
	sum := hash.NewChecksum()
	if err := DecodeGrid(io.TeeReader(bufio.NewReader(f), sum), width, ds.Data); err != nil {
		return nil, fmt.Errorf("%w (%s)", err, job.Filename)
	}
	ds.Checksum = sum.String()
	return ds, nil
}

// DecodeGrid fills data with little-endian floating point samples
// read from r one at a time. width is the size of each sample in bytes:
// 4 for float32 or 8 for float64. Any short read is an error.
func DecodeGrid(r io.Reader, width int, data []float32) error {
	var decode func([]byte) float32
	switch width {
	case 4:
		decode = func(b []byte) float32 {
			return math.Float32frombits(binary.LittleEndian.Uint32(b))
		}
	case 8:
		decode = func(b []byte) float32 {
			return float32(math.Float64frombits(binary.LittleEndian.Uint64(b)))
		}
	default:
		return fmt.Errorf("%w: unsupported sample width of %d bytes", ErrInvalidSize, width)
	}
	buf := make([]byte, width)
	for i := range data {
		if _, err := io.ReadFull(r, buf); err != nil {
			return fmt.Errorf("%w: value %d of %d: %v", ErrShortRead, i+1, len(data), err)
		}
		data[i] = decode(buf)
	}
	return nil
}

// Stats summarizes the values in a dataset.
type Stats struct {
	// Valid and Missing are the number of samples with and without data.
	// Samples equal to the fill value or NaN are missing.
	Valid, Missing int

	// Min and Max are the range of the valid samples. They are zero
	// if there are none.
	Min, Max float64
}

// Stats computes summary statistics of ds.Data.
func (ds *GriddedDataset) Stats() Stats {
	var s Stats
	first := true
	n := ds.Geometry.Width * ds.Geometry.Height
	if n <= 0 {
		return s
	}
	day := make([]float64, 0, n)
	for d := 0; d*n < len(ds.Data); d++ {
		day = day[:0]
		for _, v := range ds.Data[d*n : (d+1)*n] {
			if v == ds.Fill || math.IsNaN(float64(v)) {
				s.Missing++
				continue
			}
			day = append(day, float64(v))
		}
		if len(day) == 0 {
			continue
		}
		s.Valid += len(day)
		lo, hi := floats.Min(day), floats.Max(day)
		if first || lo < s.Min {
			s.Min = lo
		}
		if first || hi > s.Max {
			s.Max = hi
		}
		first = false
	}
	return s
}

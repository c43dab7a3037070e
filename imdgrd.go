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

// Package imdgrd converts India Meteorological Department (IMD) binary
// gridded daily rainfall and temperature files (GRD) to NetCDF.
//
// A GRD file is a flat sequence of little-endian float32 values with no
// header, ordered by day, then latitude, then longitude. Neither the data
// type nor the year is stored in the file: the data type and number of days
// are inferred from the file size, and the year (and whether temperature data
// holds daily minima or maxima) from the file name. Explicit options
// override what is inferred, and the result is checked for consistency
// before any data is read.
//
// Rainfall data is on a 0.25° grid of 129 latitudes (6.5N to 38.5N) by 135
// longitudes (66.5E to 100E), in mm. Temperature data is on a 1° grid of 31
// latitudes (7.5N to 37.5N) by 31 longitudes (67.5E to 97.5E), in °C.
package imdgrd

// Version gives the version number.
const Version = "1.1.0"

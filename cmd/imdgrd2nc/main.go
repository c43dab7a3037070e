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

// Command imdgrd2nc converts India Meteorological Department GRD files
// to NetCDF.
package main

import (
	"os"

	"github.com/cemac/imd-grd-to-nc/imdgrdutil"
)

func main() {
	os.Exit(imdgrdutil.Execute(os.Args[1:], os.Stdout, os.Stderr))
}

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
)

// NCExt is the extension given to output files.
const NCExt = ".nc"

var extPattern = regexp.MustCompile(`\.[^.]+$`)

// OutputTarget describes where and how the converted data is written.
type OutputTarget struct {
	Filename string
	Variable string
	Units    string
	Clobber  bool
}

// ResolveOutput works out the output file name and the name and units of
// the output variable. Unless opts.Clobber is set, it is an error for the
// output file to exist already.
func ResolveOutput(opts JobOptions, kind Kind) (*OutputTarget, error) {
	out := &OutputTarget{
		Filename: OutputPath(opts.Infile, opts.Outfile),
		Variable: opts.NCVar,
		Units:    opts.NCUnits,
		Clobber:  opts.Clobber,
	}
	if _, err := os.Stat(out.Filename); err == nil && !out.Clobber {
		return nil, fmt.Errorf("%w: %s. Use -c option to overwrite", ErrOutputExists, out.Filename)
	}
	if out.Variable == "" {
		out.Variable = kind.DefaultVariable()
	}
	if out.Units == "" {
		out.Units = kind.DefaultUnits()
	}
	return out, nil
}

// OutputPath returns outfile if it is set. Otherwise it replaces the
// extension of infile with NCExt, or appends NCExt if infile has no
// extension.
func OutputPath(infile, outfile string) string {
	if outfile != "" {
		return outfile
	}
	if loc := extPattern.FindStringIndex(infile); loc != nil {
		return infile[:loc[0]] + NCExt
	}
	return infile + NCExt
}

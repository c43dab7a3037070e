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

// Package hash computes the keys and checksums that identify conversion
// jobs and their input data.
package hash

import (
	"encoding/gob"
	"fmt"
	"hash"
	"hash/fnv"

	"github.com/davecgh/go-spew/spew"
)

// Key returns a short hash key for the specified object, suitable for
// telling apart log lines from different jobs.
func Key(object interface{}) string {
	h := fnv.New64a()
	if err := gob.NewEncoder(h).Encode(object); err != nil {
		// If there is an error (e.g., an unexported field) use spew instead of gob.
		h.Reset()
		printer := spew.ConfigState{
			Indent:                  " ",
			SortKeys:                true,
			DisableMethods:          true,
			SpewKeys:                true,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
		}
		printer.Fprintf(h, "%#v", object)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Checksum accumulates an FNV-1a 128-bit checksum of the bytes written
// to it.
type Checksum struct {
	h hash.Hash
}

// NewChecksum returns an empty checksum.
func NewChecksum() *Checksum {
	return &Checksum{h: fnv.New128a()}
}

func (c *Checksum) Write(p []byte) (int, error) { return c.h.Write(p) }

// String returns the checksum in the form "fnv128a:<hex>".
func (c *Checksum) String() string {
	return fmt.Sprintf("fnv128a:%x", c.h.Sum(nil))
}

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
	"path/filepath"
	"time"

	"github.com/cemac/imd-grd-to-nc/internal/hash"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// verify is replaced in tests.
var verify = Verify

// ConvertConfig holds the environment a conversion runs in.
type ConvertConfig struct {
	// Log receives progress messages. If nil, the standard logrus
	// logger is used.
	Log logrus.FieldLogger

	// Clock is used for the history attribute and the elapsed time.
	// If nil, the real clock is used.
	Clock clockwork.Clock

	// Verify re-reads the output file after it is written.
	Verify bool
}

// Result describes a finished conversion.
type Result struct {
	Job     *ResolvedJob
	Output  *OutputTarget
	Stats   Stats
	Elapsed time.Duration

	// BytesRead is the size of the input file.
	BytesRead int64
}

// Convert converts the GRD file named in opts to NetCDF. An output file
// that can not be written or fails verification is removed.
// The returned Result is non-nil whenever the input file could be
// classified, even if a later step fails.
func Convert(opts JobOptions, cfg ConvertConfig) (*Result, error) {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	start := clock.Now()

	probe, err := Probe(opts.Infile)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"file":  probe.Filename,
		"bytes": probe.Size,
		"kind":  probe.Kind,
		"days":  probe.Days,
	}).Debug("classified input file")
	r := &Result{BytesRead: probe.Size}
	defer func() { r.Elapsed = clock.Since(start) }()

	if r.Job, err = Reconcile(opts, probe); err != nil {
		return r, err
	}
	if r.Output, err = ResolveOutput(opts, r.Job.Kind); err != nil {
		return r, err
	}
	log = log.WithField("job", hash.Key(*r.Job))
	log.WithFields(logrus.Fields{
		"kind":     r.Job.Kind,
		"year":     r.Job.Year,
		"days":     r.Job.Days,
		"output":   r.Output.Filename,
		"variable": r.Output.Variable,
		"units":    r.Output.Units,
	}).Info("converting")

	log.Debug("reading input data...")
	ds, err := ReadGrid(r.Job)
	if err != nil {
		return r, err
	}
	r.Stats = ds.Stats()

	log.WithField("checksum", ds.Checksum).Debug("writing NetCDF file...")
	err = WriteNetCDF(r.Output, ds,
		Attribute{Name: "source", Value: filepath.Base(r.Job.Filename)},
		Attribute{Name: "source_checksum", Value: ds.Checksum},
		Attribute{Name: "history", Value: fmt.Sprintf("%s imdgrd2nc %s", start.UTC().Format(time.RFC3339), Version)},
	)
	if err != nil {
		return r, err
	}

	if cfg.Verify {
		log.Debug("verifying NetCDF file...")
		if err := verify(r.Output, ds); err != nil {
			os.Remove(r.Output.Filename)
			return r, err
		}
	}

	log.WithFields(logrus.Fields{
		"output":  r.Output.Filename,
		"valid":   r.Stats.Valid,
		"missing": r.Stats.Missing,
		"min":     r.Stats.Min,
		"max":     r.Stats.Max,
		"elapsed": clock.Since(start),
	}).Info("conversion complete")
	return r, nil
}

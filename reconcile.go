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

// Years outside of this range are rejected when given explicitly.
const (
	MinYear = 1900
	MaxYear = 2100
)

// JobOptions holds the options for a single conversion. Only Infile
// is required; zero values mean "not specified".
type JobOptions struct {
	Infile  string
	Outfile string

	// Clobber allows an existing output file to be overwritten.
	Clobber bool

	Kind Kind
	Year int

	// NCVar and NCUnits are the name and units of the output data variable.
	NCVar   string
	NCUnits string
}

// ResolvedJob is a checked, conflict-free description of the input
// of a conversion.
type ResolvedJob struct {
	Filename string
	Size     int64
	Days     int

	// Kind is Rain, MinTemp or MaxTemp.
	Kind Kind
	Year int

	// YearFromFilename is true if the year was inferred rather than given.
	YearFromFilename bool
}

// Reconcile merges the explicit options with what was inferred from the
// input file. Explicit values take precedence. It returns an error if the
// kind is still ambiguous, if the requested kind does not match the file
// size, if no year is available, or if the number of days in the file does
// not match the year.
func Reconcile(opts JobOptions, probe *InputProbe) (*ResolvedJob, error) {
	job := &ResolvedJob{
		Filename: probe.Filename,
		Size:     probe.Size,
		Days:     probe.Days,
		Kind:     probe.Kind,
	}
	if opts.Kind != Unspecified {
		job.Kind = opts.Kind
	}

	if job.Kind == Temp {
		return nil, fmt.Errorf("%w\nTry specifying data type with the -t option", ErrAmbiguousKind)
	}
	if (job.Kind == Rain && probe.Kind != Rain) ||
		(job.Kind.IsTemperature() && !probe.Kind.IsTemperature()) {
		return nil, fmt.Errorf("%w: specified data type: %s, detected data type: %s",
			ErrKindMismatch, job.Kind, probe.Kind)
	}

	switch {
	case opts.Year != 0:
		if opts.Year < MinYear || opts.Year > MaxYear {
			return nil, fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidYear, opts.Year, MinYear, MaxYear)
		}
		job.Year = opts.Year
	case probe.YearFound:
		job.Year = probe.Year
		job.YearFromFilename = true
	default:
		return nil, ErrMissingYear
	}

	if err := checkCalendar(job); err != nil {
		return nil, err
	}
	return job, nil
}

// checkCalendar makes sure that a file holding 366 days is for a leap year
// and one holding 365 days is not. Every fourth year is taken as a leap
// year, which holds for the whole of MinYear to MaxYear except 1900 and 2100.
func checkCalendar(job *ResolvedJob) error {
	leap := job.Year%4 == 0
	var msg string
	switch {
	case job.Days == 366 && !leap:
		msg = "does not appear to be a leap year"
	case job.Days == 365 && leap:
		msg = "appears to be a leap year"
	default:
		return nil
	}
	err := fmt.Errorf("%w: data file %s contains data for %d days\nYear %d %s",
		ErrCalendarMismatch, job.Filename, job.Days, job.Year, msg)
	if job.YearFromFilename {
		err = fmt.Errorf("%w\nTry specifying a year with the -y option", err)
	}
	return err
}

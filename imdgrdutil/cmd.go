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

// Package imdgrdutil contains the command-line interface of imdgrd2nc.
package imdgrdutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	imdgrd "github.com/cemac/imd-grd-to-nc"
	"github.com/jonboulle/clockwork"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const shortUsage = "Usage: imdgrd2nc -i input-file [-o output-file] [-c] [-t data-type] " +
	"[-y data-year] [-v netcdf-varname] [-u netcdf-units]"

// options are the configuration options available to imdgrd2nc.
var options = []struct {
	name, usage, shorthand string
	defaultVal             interface{}
}{
	{
		name: "config",
		usage: `
              config specifies the configuration file location.`,
		defaultVal: "",
	},
	{
		name: "infile",
		usage: `
              infile is the input GRD file to read.`,
		shorthand:  "i",
		defaultVal: "",
	},
	{
		name: "outfile",
		usage: `
              outfile is the output NetCDF file to create. If not specified,
              the input file name will be used to determine a name for the
              output file.`,
		shorthand:  "o",
		defaultVal: "",
	},
	{
		name: "clobber",
		usage: `
              clobber specifies whether an existing output file may be
              overwritten.`,
		shorthand:  "c",
		defaultVal: false,
	},
	{
		name: "type",
		usage: `
              type is the data type of the input file. Valid options are
              'rain', 'mintemp' and 'maxtemp'. If not specified, the data
              type will be determined from the file size and name (if
              possible). The file size is always used to check the type.`,
		shorthand:  "t",
		defaultVal: "",
	},
	{
		name: "year",
		usage: `
              year is the year of the input data. If not specified, the year
              will be determined from the file name (if possible). The file
              size is always used to check the year.`,
		shorthand:  "y",
		defaultVal: "",
	},
	{
		name: "ncvar",
		usage: `
              ncvar is the variable name for the data in the NetCDF output
              file. Default values are 'rainfall', 'min_temp' and 'max_temp'.`,
		shorthand:  "v",
		defaultVal: "",
	},
	{
		name: "ncunits",
		usage: `
              ncunits is the units of the data in the NetCDF output file.
              Default values are 'mm' for rainfall and 'celsius' for
              temperature.`,
		shorthand:  "u",
		defaultVal: "",
	},
	{
		name: "verify",
		usage: `
              verify specifies whether the output file is read back and
              checked after it has been written.`,
		defaultVal: true,
	},
	{
		name: "loglevel",
		usage: `
              loglevel is the minimum level of log messages to print:
              one of 'debug', 'info', 'warning' or 'error'.`,
		defaultVal: "info",
	},
	{
		name: "logfile",
		usage: `
              logfile is an optional file to copy log messages to.`,
		defaultVal: "",
	},
	{
		name: "metricsfile",
		usage: `
              metricsfile is an optional file to write conversion metrics
              to, in the Prometheus text format.`,
		defaultVal: "",
	},
}

// usageError is an error in the command line itself. It is reported
// together with the short usage message.
type usageError struct{ error }

// cli holds the command and configuration for a single invocation.
type cli struct {
	Root *cobra.Command

	// Cfg holds configuration information.
	Cfg *viper.Viper

	clock         clockwork.Clock
	helpRequested bool
}

func newCLI(stdout, stderr io.Writer, clock clockwork.Clock) *cli {
	c := &cli{Cfg: viper.New(), clock: clock}
	c.Root = &cobra.Command{
		Use:   "imdgrd2nc",
		Short: "Convert IMD GRD files to NetCDF.",
		Long: `imdgrd2nc converts daily gridded rainfall and temperature data files
published by the India Meteorological Department to NetCDF.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'IMDGRD_var' where 'var' is
the name of the variable to be set. File names may contain environment
variables.`,
		Version:           imdgrd.Version,
		DisableAutoGenTag: true,
		SilenceErrors:     true,
		SilenceUsage:      true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("Invalid option specified: %s", args[0])}
			}
			return nil
		},
		PersistentPreRunE: func(*cobra.Command, []string) error { return c.setConfig() },
		RunE:              c.run,
	}
	c.Root.CompletionOptions.DisableDefaultCmd = true
	c.Root.SetOut(stdout)
	c.Root.SetErr(stderr)
	c.Root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		c.helpRequested = true
		fmt.Fprint(cmd.OutOrStdout(), c.longUsage())
	})
	c.Root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	// Set the prefix for configuration environment variables.
	c.Cfg.SetEnvPrefix("IMDGRD")
	c.Cfg.AutomaticEnv()

	c.addOptions(c.Root.Flags())
	return c
}

// addOptions creates a flag for each option in set and binds it into
// the configuration.
func (c *cli) addOptions(set *pflag.FlagSet) {
	for _, option := range options {
		switch option.defaultVal.(type) {
		case string:
			if option.shorthand == "" {
				set.String(option.name, option.defaultVal.(string), option.usage)
			} else {
				set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
			}
		case bool:
			if option.shorthand == "" {
				set.Bool(option.name, option.defaultVal.(bool), option.usage)
			} else {
				set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
			}
		default:
			panic("invalid argument type")
		}
		c.Cfg.BindPFlag(option.name, set.Lookup(option.name))
	}
	// The help flag is declared here so that cobra does not add its own.
	set.BoolP("help", "h", false, `
              help displays this help message and exits.`)
}

// setConfig finds and reads in the configuration file, if there is one.
func (c *cli) setConfig() error {
	if cfgpath := c.Cfg.GetString("config"); cfgpath != "" {
		c.Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := c.Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("imdgrd: problem reading configuration file: %v", err)
		}
	}
	return nil
}

func (c *cli) longUsage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n%s\n\nOptions:\n%s", shortUsage, c.Root.Long, c.Root.Flags().FlagUsages())
	return b.String()
}

// run carries out the conversion.
func (c *cli) run(cmd *cobra.Command, _ []string) error {
	opts, err := jobOptions(c.Cfg)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cmd.ErrOrStderr(),
		c.Cfg.GetString("loglevel"), os.ExpandEnv(c.Cfg.GetString("logfile")))
	if err != nil {
		return err
	}
	defer closeLog()

	r, err := imdgrd.Convert(opts, imdgrd.ConvertConfig{
		Log:    log,
		Clock:  c.clock,
		Verify: c.Cfg.GetBool("verify"),
	})

	if path := os.ExpandEnv(c.Cfg.GetString("metricsfile")); path != "" {
		m := newMetrics()
		m.observe(r, err)
		m.LastRun.Set(float64(c.clock.Now().Unix()))
		if werr := m.write(path); werr != nil {
			log.WithError(werr).Warn("problem writing metrics file")
		}
	}
	return err
}

// jobOptions reads the conversion options from cfg.
func jobOptions(cfg *viper.Viper) (imdgrd.JobOptions, error) {
	opts := imdgrd.JobOptions{
		Infile:  os.ExpandEnv(cfg.GetString("infile")),
		Outfile: os.ExpandEnv(cfg.GetString("outfile")),
		Clobber: cfg.GetBool("clobber"),
		NCVar:   cfg.GetString("ncvar"),
		NCUnits: cfg.GetString("ncunits"),
	}
	if t := cfg.GetString("type"); t != "" {
		k, err := imdgrd.ParseKind(t)
		if err != nil {
			return opts, err
		}
		opts.Kind = k
	}
	if y := cast.ToString(cfg.Get("year")); y != "" {
		year, err := parseYear(y)
		if err != nil {
			return opts, err
		}
		opts.Year = year
	}
	return opts, nil
}

var decimal = regexp.MustCompile(`^[0-9]+$`)

// parseYear parses an explicitly given year, which must be a decimal
// number between imdgrd.MinYear and imdgrd.MaxYear. Leading zeros are
// allowed.
func parseYear(s string) (int, error) {
	t := strings.TrimSpace(s)
	if !decimal.MatchString(t) {
		return 0, fmt.Errorf("%w: %s", imdgrd.ErrInvalidYear, s)
	}
	y, err := strconv.Atoi(t)
	if err != nil || y < imdgrd.MinYear || y > imdgrd.MaxYear {
		return 0, fmt.Errorf("%w: %s", imdgrd.ErrInvalidYear, s)
	}
	return y, nil
}

// Execute runs imdgrd2nc with the given command-line arguments
// (not including the program name) and returns the exit status.
func Execute(args []string, stdout, stderr io.Writer) int {
	return execute(args, stdout, stderr, clockwork.NewRealClock())
}

func execute(args []string, stdout, stderr io.Writer, clock clockwork.Clock) int {
	c := newCLI(stdout, stderr, clock)
	if len(args) == 0 {
		fmt.Fprint(stdout, c.longUsage())
		return 1
	}
	c.Root.SetArgs(args)
	err := c.Root.Execute()
	var uerr usageError
	switch {
	case errors.As(err, &uerr):
		fmt.Fprintln(stderr, uerr.error)
		fmt.Fprintln(stderr, shortUsage)
		return 1
	case err != nil:
		fmt.Fprintln(stderr, err)
		return 1
	case c.helpRequested:
		return 1
	}
	return 0
}

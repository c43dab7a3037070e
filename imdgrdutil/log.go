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

package imdgrdutil

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// newLogger returns a logger writing to w and, if logfile is not empty,
// to that file too. The returned function closes the log file.
func newLogger(w io.Writer, level, logfile string) (*logrus.Logger, func() error, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("imdgrd: invalid log level %q", level)
	}
	logger := logrus.New()
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	closer := func() error { return nil }
	if logfile != "" {
		f, err := os.Create(logfile)
		if err != nil {
			return nil, nil, fmt.Errorf("imdgrd: problem creating log file: %v", err)
		}
		w = io.MultiWriter(w, f)
		closer = f.Close
	}
	logger.SetOutput(w)
	return logger, closer, nil
}

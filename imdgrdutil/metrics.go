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
	imdgrd "github.com/cemac/imd-grd-to-nc"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "imdgrd"

// metrics holds the counters and gauges describing a single conversion.
// They are written once, at exit, in the textfile-collector format.
type metrics struct {
	reg *prometheus.Registry

	BytesRead      prometheus.Counter
	SamplesValid   prometheus.Counter
	SamplesMissing prometheus.Counter
	Days           prometheus.Gauge
	Duration       prometheus.Gauge
	Success        prometheus.Gauge
	LastRun        prometheus.Gauge
	Errors         *prometheus.CounterVec // labels: reason
}

func newMetrics() *metrics {
	m := &metrics{
		reg: prometheus.NewRegistry(),
		BytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_bytes_total",
			Help:      "Size of the input GRD file.",
		}),
		SamplesValid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_valid_total",
			Help:      "Grid samples holding data.",
		}),
		SamplesMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_missing_total",
			Help:      "Grid samples equal to the fill value.",
		}),
		Days: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "days",
			Help:      "Number of days in the input file.",
		}),
		Duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Time taken by the conversion.",
		}),
		Success: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "conversion_success",
			Help:      "1 if the last conversion succeeded, 0 otherwise.",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time at which the last conversion finished.",
		}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Failed conversions by reason.",
		}, []string{"reason"}),
	}
	m.reg.MustRegister(
		m.BytesRead, m.SamplesValid, m.SamplesMissing,
		m.Days, m.Duration, m.Success, m.LastRun, m.Errors,
	)
	return m
}

// observe records the outcome of a conversion. r may be nil.
func (m *metrics) observe(r *imdgrd.Result, err error) {
	if r != nil {
		m.BytesRead.Add(float64(r.BytesRead))
		if r.Job != nil {
			m.Days.Set(float64(r.Job.Days))
		}
		m.SamplesValid.Add(float64(r.Stats.Valid))
		m.SamplesMissing.Add(float64(r.Stats.Missing))
		m.Duration.Set(r.Elapsed.Seconds())
	}
	if err != nil {
		m.Errors.WithLabelValues(imdgrd.Reason(err)).Inc()
		m.Success.Set(0)
		return
	}
	m.Success.Set(1)
}

// write writes the metrics to path, replacing any existing file.
func (m *metrics) write(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}

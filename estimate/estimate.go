// Package estimate provides pluggable job-size estimators used by the
// priority worklist to order per-unit work (§4.4).
package estimate

import (
	"bytes"
	"os"

	log "github.com/golang/glog"
)

// Estimator returns a non-negative size for a source file. Reading is
// best-effort: on I/O error it returns 0 rather than failing the
// enqueue, per §4.4.
type Estimator interface {
	Estimate(file string) int
}

// Metric names the configured job-size measure (§3 Options).
type Metric string

const (
	MetricLOC       Metric = "loc"
	MetricSemicolon Metric = "semicolon"
	MetricComma     Metric = "comma"
)

// ForMetric returns the Estimator for a configured Metric.
func ForMetric(m Metric) Estimator {
	switch m {
	case MetricLOC:
		return byteCounter('\n')
	case MetricComma:
		return byteCounter(',')
	case MetricSemicolon:
		return byteCounter(';')
	default:
		return byteCounter(';')
	}
}

// byteCounter counts one byte value across a file.
type byteCounter byte

func (b byteCounter) Estimate(file string) int {
	data, err := os.ReadFile(file)
	if err != nil {
		log.V(1).Infof("estimate: %s: %v", file, err)
		return 0
	}
	return bytes.Count(data, []byte{byte(b)})
}

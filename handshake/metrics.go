// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handshake

import (
	"errors"
	"time"

	"github.com/btcsuite/btcshake/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of a Handshaker.  A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	Attempts  prometheus.Counter
	Successes prometheus.Counter
	Failures  *prometheus.CounterVec
	BytesSent prometheus.Counter
	BytesRecv prometheus.Counter
	Latency   prometheus.Histogram
}

// NewMetrics creates the handshake metrics under namespace and registers them
// with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Attempts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "handshake",
			Name:      "attempts_total",
			Help:      "Total number of handshakes started",
		}),
		Successes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "handshake",
			Name:      "successes_total",
			Help:      "Total number of handshakes that received a response",
		}),
		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "handshake",
			Name:      "failures_total",
			Help:      "Total number of failed handshakes by error kind",
		}, []string{"kind"}),
		BytesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "handshake",
			Name:      "sent_bytes_total",
			Help:      "Total number of bytes written to endpoints",
		}),
		BytesRecv: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "handshake",
			Name:      "received_bytes_total",
			Help:      "Total number of bytes read from endpoints",
		}),
		Latency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "handshake",
			Name:      "latency_seconds",
			Help:      "Time from dial to received response or failure",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
	}
}

func (m *Metrics) recordAttempt() {
	if m == nil {
		return
	}
	m.Attempts.Inc()
}

func (m *Metrics) recordTraffic(sent, recv int) {
	if m == nil {
		return
	}
	m.BytesSent.Add(float64(sent))
	m.BytesRecv.Add(float64(recv))
}

// recordResult records the outcome and duration of one handshake.
func (m *Metrics) recordResult(err error, duration time.Duration) {
	if m == nil {
		return
	}
	m.Latency.Observe(duration.Seconds())
	if err == nil {
		m.Successes.Inc()
		return
	}
	m.Failures.WithLabelValues(errorKind(err)).Inc()
}

// errorKind returns the label used to classify err.
func errorKind(err error) string {
	var werr wire.Error
	if errors.As(err, &werr) {
		return werr.ErrorCode.String()
	}
	return "Unknown"
}

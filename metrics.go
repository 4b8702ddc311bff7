package hdrkit

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	stitch     *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hdrkit",
			Name:      "operations_total",
			Help:      "Number of engine calls by operation and result.",
		}, []string{"op", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hdrkit",
			Name:      "operation_duration_seconds",
			Help:      "Duration of engine calls.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"op"}),
		stitch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hdrkit",
			Name:      "stitch_status_total",
			Help:      "Number of stitch attempts by status.",
		}, []string{"status"}),
	}

	var err error
	if m.operations, err = register(reg, m.operations); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	if m.stitch, err = register(reg, m.stitch); err != nil {
		return nil, err
	}
	return m, nil
}

// register registers c, reusing the collector already registered under the same
// descriptor so several processors can share a registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *metrics) observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *metrics) countStatus(s StitchStatus) {
	if m == nil {
		return
	}
	m.stitch.WithLabelValues(s.String()).Inc()
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package httpx

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

type metrics struct {
	reg     *prometheus.Registry
	loads   *prometheus.CounterVec
	records *prometheus.CounterVec
}

func newMetrics(reg *prometheus.Registry) *metrics {
	m := &metrics{
		reg: reg,
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schemer_loads_total",
			Help: "Load and validate requests by schema and outcome.",
		}, []string{"schema", "outcome"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schemer_records_total",
			Help: "Records that passed a load.",
		}, []string{"schema"}),
	}
	reg.MustRegister(m.loads, m.records)
	return m
}

func (m *metrics) observe(name, outcome string, n int) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(name, outcome).Inc()
	if n > 0 {
		m.records.WithLabelValues(name).Add(float64(n))
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Package metrics provides Prometheus metrics for normalized responses.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/artpar/japi/ports"
)

// Collector counts serialized responses by outcome kind and status.
type Collector struct {
	OutcomesTotal *prometheus.CounterVec
	ErrorsTotal   *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates a collector registered on its own registry, so multiple
// collectors can coexist in one process (tests, embedded servers).
func New() *Collector {
	return NewWith(prometheus.NewRegistry())
}

// NewWith creates a collector registered on reg.
func NewWith(reg *prometheus.Registry) *Collector {
	factory := promauto.With(reg)
	c := &Collector{
		OutcomesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "japi",
				Name:      "outcomes_total",
				Help:      "Total number of responses serialized, by outcome kind and status",
			},
			[]string{"kind", "status"},
		),
		ErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "japi",
				Name:      "error_envelopes_total",
				Help:      "Total number of error envelopes produced, by status",
			},
			[]string{"status"},
		),
	}
	c.registry = reg
	return c
}

// ObserveOutcome implements ports.Observer.
func (c *Collector) ObserveOutcome(kind string, status int) {
	s := strconv.Itoa(status)
	c.OutcomesTotal.WithLabelValues(kind, s).Inc()
	if status >= 400 && status < 600 {
		c.ErrorsTotal.WithLabelValues(s).Inc()
	}
}

// Handler returns an HTTP handler exposing the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Ensure interface compliance.
var _ ports.Observer = (*Collector)(nil)

// Package metrics exposes validation outcomes to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/km-arc/go-formvalidation/framework/http/validation"
)

// Outcome labels.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
)

// Collector owns a private registry so tests and multiple apps do not
// collide on the default one.
type Collector struct {
	registry    *prometheus.Registry
	validations *prometheus.CounterVec
	failures    *prometheus.CounterVec
}

// New registers the counters under namespace.
func New(namespace string) *Collector {
	if namespace == "" {
		namespace = "formvalidation"
	}
	c := &Collector{
		registry: prometheus.NewRegistry(),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Form submissions validated, by form and outcome.",
		}, []string{"form", "outcome"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_failures_total",
			Help:      "Fields rejected, by form and failing rule.",
		}, []string{"form", "rule"}),
	}
	c.registry.MustRegister(c.validations, c.failures)
	return c
}

// Observe records the result of one validation pass.
func (c *Collector) Observe(form string, v *validation.Validator) {
	failures := v.Failures()
	if len(failures) == 0 {
		c.validations.WithLabelValues(form, OutcomeValid).Inc()
		return
	}
	c.validations.WithLabelValues(form, OutcomeInvalid).Inc()
	for _, f := range failures {
		c.failures.WithLabelValues(form, f.Rule).Inc()
	}
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}

package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Namespace prefixes every metric exported by the application.
	Namespace = "menubridge"

	// ActivationsName counts menu activations handled by the router.
	ActivationsName = "menu_activations_total"
)

// IncrementalCounter is the observability sink used by the router.
type IncrementalCounter interface {
	Increment(val ...string)
}

// Counter is a labeled Prometheus counter.
type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

// Increment adds one to the series identified by the label values.
func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// Vec exposes the underlying collector, mainly for tests.
func (c *Counter) Vec() *prometheus.CounterVec {
	return c.vec
}

// NewCounter registers a counter with the default registerer.
func NewCounter(name, help string, labels ...string) *Counter {
	return NewCounterWithRegistry(prometheus.DefaultRegisterer, name, help, labels...)
}

// NewCounterWithRegistry registers a namespaced counter with reg.
// It panics if a collector with the same name is already registered.
func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// NewActivationCounter registers the router's activation counter, labeled by
// activation kind and dispatch outcome.
func NewActivationCounter(reg prometheus.Registerer) *Counter {
	return NewCounterWithRegistry(reg, ActivationsName,
		"Menu activations handled by the router, by kind and outcome.",
		"kind", "outcome")
}

// Noop discards every increment.
type Noop struct{}

// Increment does nothing.
func (Noop) Increment(...string) {}

// GetHandler returns an HTTP handler for serving Prometheus metrics.
func GetHandler() http.Handler {
	return promhttp.Handler()
}

// GetHandlerForRegistry returns an HTTP handler for serving Prometheus metrics from a custom registry.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

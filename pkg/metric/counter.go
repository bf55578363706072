package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// EventCounterName is the name of the menu event counter.
	EventCounterName = "radial_menu_events_total"

	// EventLabel is the label carrying the navigation event name.
	EventLabel = "event"
)

type IncrementalCounter interface {
	Increment(val ...string)
}

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// Vec exposes the underlying vector, mainly for assertions in tests.
func (c *Counter) Vec() *prometheus.CounterVec {
	return c.vec
}

func NewCounter(name, help string, labels ...string) *Counter {
	return NewCounterWithRegistry(prometheus.DefaultRegisterer, name, help, labels...)
}

func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// NewEventCounter registers the menu event counter with reg.
// It is incremented once per navigation event, labeled by event name.
func NewEventCounter(reg prometheus.Registerer) *Counter {
	return NewCounterWithRegistry(reg, EventCounterName, "Number of radial menu navigation events.", EventLabel)
}

// Discard is a counter that records nothing.
type Discard struct{}

func (Discard) Increment(...string) {}

// GetHandlerForRegistry returns an HTTP handler for serving Prometheus metrics from a custom registry.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

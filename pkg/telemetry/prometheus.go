package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/devmon/pkg/devmon"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "devmon").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "devmon",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// promObserver implements devmon.Observer on Prometheus metrics.
type promObserver struct {
	classifications *prometheus.CounterVec
	sizeChanges     prometheus.Counter
	dispatches      *prometheus.CounterVec
	listenerPanics  *prometheus.CounterVec
	listeners       *prometheus.GaugeVec
}

// Prometheus creates an observer that records Monitor activity as
// Prometheus metrics.
//
// Metrics collected:
//   - devmon_classifications_total: Counter of classification passes by result
//   - devmon_size_changes_total: Counter of size-class transitions
//   - devmon_dispatches_total: Counter of dispatch passes by kind
//   - devmon_listener_panics_total: Counter of recovered listener panics by kind
//   - devmon_listeners: Gauge of registered listeners by kind
func Prometheus(opts ...MetricsOption) devmon.Observer {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &promObserver{
		classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "classifications_total",
			Help:        "Total number of classification passes by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		sizeChanges: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "size_changes_total",
			Help:        "Total number of size-class transitions",
			ConstLabels: config.ConstLabels,
		}),

		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatches_total",
			Help:        "Total number of listener dispatch passes by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		listenerPanics: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listener_panics_total",
			Help:        "Total number of recovered listener panics by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		listeners: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listeners",
			Help:        "Number of registered listeners by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),
	}
}

func (o *promObserver) ClassifyPass(size devmon.SizeClass, changed bool) {
	o.classifications.WithLabelValues(string(size)).Inc()
	if changed {
		o.sizeChanges.Inc()
	}
}

func (o *promObserver) Dispatch(kind devmon.DispatchKind, listeners int) {
	o.dispatches.WithLabelValues(string(kind)).Inc()
}

func (o *promObserver) ListenerPanic(kind devmon.DispatchKind, err error) {
	o.listenerPanics.WithLabelValues(string(kind)).Inc()
}

func (o *promObserver) ListenerAdded(kind devmon.DispatchKind) {
	o.listeners.WithLabelValues(string(kind)).Inc()
}

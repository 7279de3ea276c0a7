package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/devmon/pkg/devmon"
)

// Default tracer name for devmon instrumentation.
const defaultTracerName = "devmon"

// OTelConfig configures the OpenTelemetry observer.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "devmon").
	TracerName string

	// Attributes are added to every span.
	Attributes []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry observer.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithAttributes adds static attributes to every span.
func WithAttributes(attrs ...attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// otelObserver implements devmon.Observer on OpenTelemetry spans.
type otelObserver struct {
	config OTelConfig
}

// OpenTelemetry creates an observer that emits a span per classification
// pass and per dispatch pass, and records listener panics as error events.
//
// The tracer comes from the global OpenTelemetry tracer provider; configure
// it in main() before constructing the Monitor:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) devmon.Observer {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return &otelObserver{config: config}
}

func (o *otelObserver) span(name string, attrs ...attribute.KeyValue) trace.Span {
	_, span := o.config.tracer.Start(
		context.Background(),
		name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(o.config.Attributes...),
		trace.WithAttributes(attrs...),
	)
	return span
}

func (o *otelObserver) ClassifyPass(size devmon.SizeClass, changed bool) {
	span := o.span("devmon.classify",
		attribute.String("devmon.size", string(size)),
		attribute.Bool("devmon.changed", changed),
	)
	span.End()
}

func (o *otelObserver) Dispatch(kind devmon.DispatchKind, listeners int) {
	span := o.span("devmon.dispatch",
		attribute.String("devmon.kind", string(kind)),
		attribute.Int("devmon.listeners", listeners),
	)
	span.End()
}

func (o *otelObserver) ListenerPanic(kind devmon.DispatchKind, err error) {
	span := o.span("devmon.listener_panic",
		attribute.String("devmon.kind", string(kind)),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}

func (o *otelObserver) ListenerAdded(kind devmon.DispatchKind) {}

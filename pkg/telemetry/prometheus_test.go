package telemetry

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/devmon/pkg/devmon"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestPrometheus_RecordsMonitorActivity(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := Prometheus(WithRegistry(reg)).(*promObserver)

	obs.ClassifyPass(devmon.SizeSmall, true)
	obs.ClassifyPass(devmon.SizeSmall, false)
	obs.ClassifyPass(devmon.SizeMedium, true)
	obs.Dispatch(devmon.KindSize, 2)
	obs.Dispatch(devmon.KindOrientation, 1)
	obs.Dispatch(devmon.KindOrientation, 1)
	obs.ListenerPanic(devmon.KindSize, errors.New("boom"))
	obs.ListenerAdded(devmon.KindSize)
	obs.ListenerAdded(devmon.KindSize)
	obs.ListenerAdded(devmon.KindOrientation)

	if got := counterValue(t, obs.classifications.WithLabelValues("small")); got != 2 {
		t.Errorf("classifications{small} = %v, want 2", got)
	}
	if got := counterValue(t, obs.classifications.WithLabelValues("medium")); got != 1 {
		t.Errorf("classifications{medium} = %v, want 1", got)
	}
	if got := counterValue(t, obs.sizeChanges); got != 2 {
		t.Errorf("size_changes = %v, want 2", got)
	}
	if got := counterValue(t, obs.dispatches.WithLabelValues("size")); got != 1 {
		t.Errorf("dispatches{size} = %v, want 1", got)
	}
	if got := counterValue(t, obs.dispatches.WithLabelValues("orientation")); got != 2 {
		t.Errorf("dispatches{orientation} = %v, want 2", got)
	}
	if got := counterValue(t, obs.listenerPanics.WithLabelValues("size")); got != 1 {
		t.Errorf("listener_panics{size} = %v, want 1", got)
	}
	if got := gaugeValue(t, obs.listeners.WithLabelValues("size")); got != 2 {
		t.Errorf("listeners{size} = %v, want 2", got)
	}
	if got := gaugeValue(t, obs.listeners.WithLabelValues("orientation")); got != 1 {
		t.Errorf("listeners{orientation} = %v, want 1", got)
	}
}

func TestPrometheus_NamespaceOption(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := Prometheus(
		WithRegistry(reg),
		WithNamespace("myapp"),
		WithSubsystem("ui"),
		WithConstLabels(prometheus.Labels{"node": "a"}),
	)
	obs.ClassifyPass(devmon.SizeLarge, true)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	found := false
	for _, fam := range families {
		if fam.GetName() == "myapp_ui_classifications_total" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected metric myapp_ui_classifications_total to be registered")
	}
}

func TestOpenTelemetry_NoopProviderSafe(t *testing.T) {
	// Without a configured tracer provider the global tracer is a no-op;
	// every hook must still be safe to call.
	obs := OpenTelemetry(WithTracerName("test"))

	obs.ClassifyPass(devmon.SizeSmall, true)
	obs.Dispatch(devmon.KindSize, 3)
	obs.ListenerPanic(devmon.KindOrientation, errors.New("boom"))
	obs.ListenerAdded(devmon.KindSize)
}

func TestMulti_FansOut(t *testing.T) {
	reg1 := prometheus.NewRegistry()
	reg2 := prometheus.NewRegistry()
	a := Prometheus(WithRegistry(reg1)).(*promObserver)
	b := Prometheus(WithRegistry(reg2)).(*promObserver)

	m := Multi(a, nil, b)
	m.ClassifyPass(devmon.SizeSmall, true)
	m.Dispatch(devmon.KindSize, 1)

	for _, obs := range []*promObserver{a, b} {
		if got := counterValue(t, obs.classifications.WithLabelValues("small")); got != 1 {
			t.Errorf("classifications{small} = %v, want 1", got)
		}
		if got := counterValue(t, obs.dispatches.WithLabelValues("size")); got != 1 {
			t.Errorf("dispatches{size} = %v, want 1", got)
		}
	}
}

package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/discochess/retrospect/internal/stats"
)

func TestNew_DefaultRegistry(t *testing.T) {
	c := New(nil)
	if c == nil {
		t.Fatal("New(nil) returned nil")
	}
	if c.registry == nil {
		t.Error("registry should not be nil")
	}
}

func TestCollector_IncCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.IncCounter(stats.MetricGames, 3)
	c.IncCounter(stats.MetricGames, 2)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := false
	for _, m := range metrics {
		if m.GetName() == stats.MetricGames {
			found = true
			val := m.GetMetric()[0].GetCounter().GetValue()
			if val != 5 {
				t.Errorf("counter value = %v, want 5", val)
			}
		}
	}
	if !found {
		t.Errorf("counter %s not found in registry", stats.MetricGames)
	}
}

func TestCollector_SetGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.SetGauge("retrospect_test_gauge", 42)
	c.SetGauge("retrospect_test_gauge", 7)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	for _, m := range metrics {
		if m.GetName() == "retrospect_test_gauge" {
			val := m.GetMetric()[0].GetGauge().GetValue()
			if val != 7 {
				t.Errorf("gauge value = %v, want 7", val)
			}
			return
		}
	}
	t.Error("gauge retrospect_test_gauge not found in registry")
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	c1 := New(reg)
	c2 := New(reg)

	// Both collectors target the same registry; the second must reuse
	// the existing metric rather than fail.
	c1.IncCounter(stats.MetricCacheHits, 1)
	c2.IncCounter(stats.MetricCacheHits, 1)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	for _, m := range metrics {
		if m.GetName() == stats.MetricCacheHits {
			val := m.GetMetric()[0].GetCounter().GetValue()
			if val != 2 {
				t.Errorf("counter value = %v, want 2", val)
			}
			return
		}
	}
	t.Errorf("counter %s not found in registry", stats.MetricCacheHits)
}

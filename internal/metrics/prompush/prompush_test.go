package prompush

import (
	"testing"

	dto "github.com/prometheus/client_model/go"

	"salesdw/internal/metrics"
)

func gather(t *testing.T, b *Backend, name string) *dto.MetricFamily {
	t.Helper()
	fams, err := b.reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, f := range fams {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

func TestNewBackendRequiresURL(t *testing.T) {
	if _, err := NewBackend("job", ""); err == nil {
		t.Fatalf("empty gateway URL did not fail")
	}
}

func TestIncCounterRouting(t *testing.T) {
	b, err := NewBackend("job", "http://localhost:9091")
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}

	b.IncCounter("dwload_step_total", 1, metrics.Labels{"step": "read", "status": "success"})
	b.IncCounter("dwload_rows_total", 42, metrics.Labels{"kind": "facts"})
	b.IncCounter("dwload_table_rows_total", 7, metrics.Labels{"table": "sales"})
	b.IncCounter("unknown_metric", 1, nil)

	f := gather(t, b, "dwload_step_total")
	if f == nil || len(f.Metric) != 1 || f.Metric[0].GetCounter().GetValue() != 1 {
		t.Fatalf("step counter family = %v", f)
	}

	f = gather(t, b, "dwload_rows_total")
	if f == nil || f.Metric[0].GetCounter().GetValue() != 42 {
		t.Fatalf("rows counter family = %v", f)
	}
	var kind string
	for _, l := range f.Metric[0].Label {
		if l.GetName() == "kind" {
			kind = l.GetValue()
		}
	}
	if kind != "facts" {
		t.Fatalf("kind label = %q", kind)
	}

	f = gather(t, b, "dwload_table_rows_total")
	if f == nil || f.Metric[0].GetCounter().GetValue() != 7 {
		t.Fatalf("table counter family = %v", f)
	}
}

func TestObserveHistogram(t *testing.T) {
	b, err := NewBackend("job", "http://localhost:9091")
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}

	b.ObserveHistogram("dwload_step_duration_seconds", 0.5, metrics.Labels{"step": "write", "status": "success"})
	b.ObserveHistogram("some_other_metric", 1.0, nil)

	f := gather(t, b, "dwload_step_duration_seconds")
	if f == nil || len(f.Metric) != 1 {
		t.Fatalf("duration family = %v", f)
	}
	s := f.Metric[0].GetSummary()
	if s.GetSampleCount() != 1 || s.GetSampleSum() != 0.5 {
		t.Fatalf("summary = %v", s)
	}
}

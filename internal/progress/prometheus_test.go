package progress

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusReporterTracksBeginAdvance(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheusReporter(reg)

	p.Begin(StageDecode, 100)
	p.Advance(StageDecode, 30)
	p.Advance(StageDecode, 20)

	if got := testutil.ToFloat64(p.total.WithLabelValues(string(StageDecode))); got != 100 {
		t.Errorf("stage_total = %v, want 100", got)
	}
	if got := testutil.ToFloat64(p.current.WithLabelValues(string(StageDecode))); got != 50 {
		t.Errorf("stage_current = %v, want 50", got)
	}
}

func TestPrometheusReporterStagesAreIndependent(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheusReporter(reg)

	p.Begin(StageScan, 10)
	p.Begin(StageAssemble, 5)
	p.Advance(StageScan, 4)

	if got := testutil.ToFloat64(p.current.WithLabelValues(string(StageScan))); got != 4 {
		t.Errorf("scan stage_current = %v, want 4", got)
	}
	if got := testutil.ToFloat64(p.current.WithLabelValues(string(StageAssemble))); got != 0 {
		t.Errorf("assemble stage_current = %v, want 0", got)
	}
}

func TestDiscardReporterIgnoresEverything(t *testing.T) {
	var d Discard
	d.Begin(StageResolve, 10)
	d.Advance(StageResolve, 3)
	d.Finish(StageResolve)
}

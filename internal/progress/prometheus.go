package progress

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusReporter mirrors progress events onto gauges/counters so a
// long-running batch job (e.g. a live-volume parse) can be scraped
// externally instead of only printed.
type PrometheusReporter struct {
	total   *prometheus.GaugeVec
	current *prometheus.GaugeVec
}

// NewPrometheusReporter registers its metrics against reg. Pass
// prometheus.NewRegistry() for an isolated registry in tests, or
// prometheus.DefaultRegisterer in cmd/tl.
func NewPrometheusReporter(reg prometheus.Registerer) *PrometheusReporter {
	p := &PrometheusReporter{
		total: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "tl",
			Subsystem: "progress",
			Name:      "stage_total",
			Help:      "Total work units for the current pipeline stage.",
		}, []string{"stage"}),
		current: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "tl",
			Subsystem: "progress",
			Name:      "stage_current",
			Help:      "Completed work units for the current pipeline stage.",
		}, []string{"stage"}),
	}
	reg.MustRegister(p.total, p.current)
	return p
}

func (p *PrometheusReporter) Begin(stage Stage, total int) {
	p.total.WithLabelValues(string(stage)).Set(float64(total))
	p.current.WithLabelValues(string(stage)).Set(0)
}

func (p *PrometheusReporter) Advance(stage Stage, delta int) {
	p.current.WithLabelValues(string(stage)).Add(float64(delta))
}

func (p *PrometheusReporter) Finish(stage Stage) {
	total := p.total.WithLabelValues(string(stage))
	_ = total
}

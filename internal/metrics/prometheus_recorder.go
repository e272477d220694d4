package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	validationIssues  prom.Gauge
	linksChecked      prom.Counter
	linksBroken       prom.Counter
	linkCheckDuration prom.Histogram
	emits             *prom.CounterVec
}

// NewPrometheusRecorder constructs the docsite metrics and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		validationIssues: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "validation_issues",
			Help:      "Issues found by the last site configuration check",
		}),
		linksChecked: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "links_checked_total",
			Help:      "Internal links verified against the content tree",
		}),
		linksBroken: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "links_broken_total",
			Help:      "Internal links that did not resolve to a page",
		}),
		linkCheckDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "link_check_duration_seconds",
			Help:      "Duration of link check runs",
			Buckets:   prom.DefBuckets,
		}),
		emits: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "emits_total",
			Help:      "Site configuration emits by format and result",
		}, []string{"format", "result"}),
	}
	reg.MustRegister(pr.validationIssues, pr.linksChecked, pr.linksBroken, pr.linkCheckDuration, pr.emits)
	return pr
}

func (p *PrometheusRecorder) SetValidationIssues(n int) {
	if p == nil {
		return
	}
	p.validationIssues.Set(float64(n))
}

func (p *PrometheusRecorder) AddLinksChecked(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.linksChecked.Add(float64(n))
}

func (p *PrometheusRecorder) AddLinksBroken(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.linksBroken.Add(float64(n))
}

func (p *PrometheusRecorder) ObserveLinkCheckDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.linkCheckDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncEmit(format string, result ResultLabel) {
	if p == nil {
		return
	}
	p.emits.WithLabelValues(format, string(result)).Inc()
}

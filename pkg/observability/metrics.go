package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pharmacy"

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Recorder receives the outcome of report and receipt generation.
type Recorder interface {
	ReportGenerated(kind, format, status string, elapsed time.Duration)
	ReceiptGenerated(status string)
}

type Metrics struct {
	reports  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	receipts *prometheus.CounterVec
	gatherer prometheus.Gatherer
}

// NewMetrics registers the collectors on registry. Pass a fresh
// prometheus.NewRegistry() per process or per test.
func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "Reports generated, by kind, format and outcome.",
		}, []string{"kind", "format", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Time spent fetching, aggregating and encoding a report.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "format"}),
		receipts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipts_generated_total",
			Help:      "Sale receipts issued or rendered, by outcome.",
		}, []string{"status"}),
		gatherer: registry,
	}

	for _, c := range []prometheus.Collector{m.reports, m.duration, m.receipts} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) ReportGenerated(kind, format, status string, elapsed time.Duration) {
	m.reports.WithLabelValues(kind, format, status).Inc()
	m.duration.WithLabelValues(kind, format).Observe(elapsed.Seconds())
}

func (m *Metrics) ReceiptGenerated(status string) {
	m.receipts.WithLabelValues(status).Inc()
}

// Handler serves the scrape endpoint for the registry the metrics live in.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Noop discards everything.
type Noop struct{}

func (Noop) ReportGenerated(string, string, string, time.Duration) {}
func (Noop) ReceiptGenerated(string) {}

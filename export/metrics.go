package export

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/labnet/testledger/metrics"
)

const subsystem = "export"

type Metrics struct {
	Runs           *prometheus.CounterVec
	Rows           prometheus.Counter
	Watermark      prometheus.Gauge
	UploadDuration prometheus.Histogram
}

func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Export runs by outcome.",
		}, []string{"outcome"}),
		Rows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: subsystem,
			Name:      "rows_total",
			Help:      "Test events delivered to the registry.",
		}),
		Watermark: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: subsystem,
			Name:      "watermark_timestamp_seconds",
			Help:      "Creation time of the last exported test event.",
		}),
		UploadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: subsystem,
			Name:      "upload_duration_seconds",
			Help:      "Duration of registry upload calls.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
	}

	for _, collector := range []prometheus.Collector{m.Runs, m.Rows, m.Watermark, m.UploadDuration} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}

	return m, nil
}

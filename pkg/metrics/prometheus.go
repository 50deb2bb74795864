package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	DocumentsIndexed  prometheus.Counter
	FlightsExtracted  prometheus.Counter
	HotelsExtracted   prometheus.Counter
	WatchChanges      prometheus.Counter
	NotificationsSent prometheus.Counter
	ExtractionTime    prometheus.Histogram
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		DocumentsIndexed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_indexed_total",
			Help:      "The total number of indexed travel documents",
		}),
		FlightsExtracted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_extracted_total",
			Help:      "The total number of persisted flight records",
		}),
		HotelsExtracted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hotels_extracted_total",
			Help:      "The total number of persisted hotel records",
		}),
		WatchChanges: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watch_changes_total",
			Help:      "The total number of detected flight status changes",
		}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of outbound notifications",
		}),
		ExtractionTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_time_seconds",
			Help:      "Time taken to index a document",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

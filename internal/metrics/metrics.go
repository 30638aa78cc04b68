package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"textsum/internal/summarizer"
)

// Recorder captures telemetry for summarization calls.
type Recorder interface {
	ObserveSummary(duration time.Duration, total, selected int, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveSummary(time.Duration, int, int, error) {}

// Nop returns a recorder that discards everything.
func Nop() Recorder { return nopRecorder{} }

// PrometheusRecorder exports summarization metrics to Prometheus.
type PrometheusRecorder struct {
	duration          prometheus.Histogram
	documents         prometheus.Counter
	sentencesIn       prometheus.Counter
	sentencesSelected prometheus.Counter
	errors            *prometheus.CounterVec
}

// NewPrometheusRecorder registers the summarization metrics on reg.
func NewPrometheusRecorder(namespace string, reg prometheus.Registerer) (*PrometheusRecorder, error) {
	if namespace == "" {
		namespace = "textsum"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &PrometheusRecorder{
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "summarize_duration_seconds",
			Help:      "Latency of a single document summarization.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		documents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Documents summarized successfully.",
		}),
		sentencesIn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentences_total",
			Help:      "Sentences found in summarized documents.",
		}),
		sentencesSelected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentences_selected_total",
			Help:      "Sentences kept in produced summaries.",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Failed summarization calls by kind.",
		}, []string{"kind"}),
	}
	collectors := []prometheus.Collector{r.duration, r.documents, r.sentencesIn, r.sentencesSelected, r.errors}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register summarizer metric: %w", err)
		}
	}
	return r, nil
}

// ObserveSummary records one summarization call.
func (r *PrometheusRecorder) ObserveSummary(duration time.Duration, total, selected int, err error) {
	if r == nil {
		return
	}
	r.duration.Observe(duration.Seconds())
	if err != nil {
		r.errors.WithLabelValues(errorKind(err)).Inc()
		return
	}
	r.documents.Inc()
	r.sentencesIn.Add(float64(total))
	r.sentencesSelected.Add(float64(selected))
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, summarizer.ErrInvalidRange):
		return "invalid_range"
	default:
		return "other"
	}
}

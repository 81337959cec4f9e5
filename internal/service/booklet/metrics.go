package booklet

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

const outcomeSuccess = "success"

// Metrics holds the booklet collectors. A nil *Metrics records nothing.
type Metrics struct {
	generations *prometheus.CounterVec
	skipped     prometheus.Counter
	duration    prometheus.Histogram
	size        prometheus.Histogram
}

// NewMetrics creates the booklet collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gradbook",
			Subsystem: "booklet",
			Name:      "generations_total",
			Help:      "Booklet generations by outcome code.",
		}, []string{"outcome"}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gradbook",
			Subsystem: "booklet",
			Name:      "skipped_students_total",
			Help:      "Student PDFs that could not be fetched or parsed.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gradbook",
			Subsystem: "booklet",
			Name:      "generation_duration_seconds",
			Help:      "Wall time of booklet generations.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		size: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gradbook",
			Subsystem: "booklet",
			Name:      "output_bytes",
			Help:      "Size of uploaded booklets.",
			Buckets:   prometheus.ExponentialBuckets(256*1024, 2, 10),
		}),
	}
	reg.MustRegister(m.generations, m.skipped, m.duration, m.size)
	return m
}

func (m *Metrics) observe(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := outcomeSuccess
	if err != nil {
		outcome = domain.BookletErrorCodeOf(err).String()
	}
	m.generations.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) observeResult(res *Result) {
	if m == nil || res == nil {
		return
	}
	m.skipped.Add(float64(len(res.SkippedStudents)))
	m.size.Observe(float64(res.SizeBytes))
}

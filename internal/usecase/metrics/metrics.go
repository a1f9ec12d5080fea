package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Store operation labels.
const (
	OpSave    = "save"
	OpLoad    = "load"
	OpLoadAll = "load_all"
	OpDelete  = "delete"
)

// Metrics provides observability for the use case module: persisted and
// deleted documents, validation rejections, and file store latency/errors.
//
// All methods are safe on a nil *Metrics so components can run unobserved.
type Metrics struct {
	UseCasesSaved      prometheus.Counter
	UseCasesDeleted    prometheus.Counter
	ValidationFailures prometheus.Counter
	StoreErrors        *prometheus.CounterVec
	StoreDuration      *prometheus.HistogramVec
}

// New registers the module metrics with reg. Pass prometheus.DefaultRegisterer
// in the binary and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UseCasesSaved: factory.NewCounter(prometheus.CounterOpts{
			Name: "usecase_saved_total",
			Help: "Total number of use cases written to the store (creates and updates)",
		}),
		UseCasesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "usecase_deleted_total",
			Help: "Total number of use cases deleted from the store",
		}),
		ValidationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "usecase_validation_failures_total",
			Help: "Total number of create/update requests rejected by methodology validation",
		}),
		StoreErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "usecase_store_errors_total",
			Help: "Total number of failed file store operations by operation",
		}, []string{"op"}),
		StoreDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "usecase_store_duration_seconds",
			Help:    "Duration of file store operations by operation",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"op"}),
	}
}

// IncrementSaved records a successful save.
func (m *Metrics) IncrementSaved() {
	if m == nil {
		return
	}
	m.UseCasesSaved.Inc()
}

// IncrementDeleted records a successful delete.
func (m *Metrics) IncrementDeleted() {
	if m == nil {
		return
	}
	m.UseCasesDeleted.Inc()
}

// IncrementValidationFailures records a rejected create or update.
func (m *Metrics) IncrementValidationFailures() {
	if m == nil {
		return
	}
	m.ValidationFailures.Inc()
}

// ObserveStore records the duration of a store operation and counts it as an
// error when err is non-nil. Call with time.Now() taken at the start.
func (m *Metrics) ObserveStore(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.StoreDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		m.StoreErrors.WithLabelValues(op).Inc()
	}
}

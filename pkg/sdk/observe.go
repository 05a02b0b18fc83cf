package solrdesk

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/solrdesk/internal/domain"
)

// Outcome labels of solrdesk_sdk_operations_total.
const (
	outcomeOK          = "ok"
	outcomeInvalid     = "invalid"
	outcomeStale       = "stale"
	outcomeBusy        = "busy"
	outcomeUpstream    = "upstream"
	outcomeUnavailable = "unavailable"
	outcomeError       = "error"
)

type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	documents  *prometheus.CounterVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solrdesk",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Desk operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "solrdesk",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "Desk operation latency, index API round trips included.",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 15},
		}, []string{"operation"}),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solrdesk",
			Subsystem: "sdk",
			Name:      "documents_loaded_total",
			Help:      "Documents appended to a collection by load-more batches.",
		}, []string{"collection"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.documents); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers c, or points c at the collector already registered
// under the same descriptor.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("solrdesk: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("solrdesk: metric registered with incompatible type %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// outcome classifies an operation error for metrics and log levels.
func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, domain.ErrStaleQuery):
		return outcomeStale
	case errors.Is(err, domain.ErrFetchInFlight):
		return outcomeBusy
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNoActiveSearch),
		errors.Is(err, domain.ErrDuplicateTranslation),
		errors.Is(err, domain.ErrNotFound):
		return outcomeInvalid
	case errors.Is(err, domain.ErrTransport):
		return outcomeUnavailable
	case errors.Is(err, domain.ErrUpstream):
		return outcomeUpstream
	default:
		return outcomeError
	}
}

// observer records desk operations. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	out := outcome(err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, out).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}
	if o.logger == nil {
		return
	}

	switch out {
	case outcomeOK:
		o.logger.Debug("desk operation done", "op", op, "duration", dur)
	case outcomeStale, outcomeBusy, outcomeInvalid:
		// caller-side races and bad input; the desk state is intact
		o.logger.Info("desk operation rejected", "op", op, "outcome", out, "error", err)
	default:
		o.logger.Warn("desk operation failed", "op", op, "outcome", out, "duration", dur, "error", err)
	}
}

// loaded counts the documents a batch appended to its collection.
func (o *observer) loaded(batches ...Batch) {
	if o == nil || o.metrics == nil {
		return
	}
	for _, b := range batches {
		if n := len(b.Documents); n > 0 {
			o.metrics.documents.WithLabelValues(b.Collection).Add(float64(n))
		}
	}
}

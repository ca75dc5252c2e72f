package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records pricing and handoff activity.
type QuoteMetrics struct {
	computeDuration *prometheus.HistogramVec
	computed        *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	submitFailures  *prometheus.CounterVec
	confirmations   prometheus.Counter
	ackDropped      *prometheus.CounterVec
}

// NewQuoteMetrics registers the quote metrics on the provided registerer.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	computeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_compute_duration_seconds",
		Help:    "Duration of quote price computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"scope"})
	computed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_computed_total",
		Help: "Price computations by scope outcome.",
	}, []string{"scope"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_submissions_total",
		Help: "Dispatched quote submissions by handoff strategy.",
	}, []string{"strategy"})
	submitFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_submit_failures_total",
		Help: "Quote submissions that could not be dispatched.",
	}, []string{"strategy"})
	confirmations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quote_confirmations_total",
		Help: "Acknowledgements accepted from the hosting page.",
	})
	ackDropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_acks_dropped_total",
		Help: "Acknowledgements dropped before confirming.",
	}, []string{"reason"})
	reg.MustRegister(computeDuration, computed, submissions, submitFailures, confirmations, ackDropped)
	return &QuoteMetrics{
		computeDuration: computeDuration,
		computed:        computed,
		submissions:     submissions,
		submitFailures:  submitFailures,
		confirmations:   confirmations,
		ackDropped:      ackDropped,
	}
}

// ObserveCompute records the duration of one price computation.
func (m *QuoteMetrics) ObserveCompute(scope string, duration time.Duration) {
	if m == nil || m.computeDuration == nil {
		return
	}
	m.computeDuration.WithLabelValues(normalizeLabel(scope)).Observe(duration.Seconds())
}

// IncComputed increments the computation counter for the scope outcome.
func (m *QuoteMetrics) IncComputed(scope string) {
	if m == nil || m.computed == nil {
		return
	}
	m.computed.WithLabelValues(normalizeLabel(scope)).Inc()
}

// IncSubmission increments the dispatched submission counter for a strategy.
func (m *QuoteMetrics) IncSubmission(strategy string) {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.WithLabelValues(normalizeLabel(strategy)).Inc()
}

// IncSubmitFailure increments the failed submission counter for a strategy.
func (m *QuoteMetrics) IncSubmitFailure(strategy string) {
	if m == nil || m.submitFailures == nil {
		return
	}
	m.submitFailures.WithLabelValues(normalizeLabel(strategy)).Inc()
}

// IncConfirmation increments the accepted acknowledgement counter.
func (m *QuoteMetrics) IncConfirmation() {
	if m == nil || m.confirmations == nil {
		return
	}
	m.confirmations.Inc()
}

// IncAckDropped increments the dropped acknowledgement counter for a reason.
func (m *QuoteMetrics) IncAckDropped(reason string) {
	if m == nil || m.ackDropped == nil {
		return
	}
	m.ackDropped.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

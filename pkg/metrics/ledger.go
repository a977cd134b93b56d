package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics records counters for the inventory ledger write path.
type LedgerMetrics struct {
	recorded *prometheus.CounterVec
	rejected *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewLedgerMetrics registers the ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	recorded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_transactions_recorded_total",
		Help: "Inventory transactions appended to the ledger.",
	}, []string{"action"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_transactions_rejected_total",
		Help: "Inventory transactions rejected before insertion.",
	}, []string{"reason"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_record_duration_seconds",
		Help:    "Duration of ledger append operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})
	reg.MustRegister(recorded, rejected, duration)
	return &LedgerMetrics{
		recorded: recorded,
		rejected: rejected,
		duration: duration,
	}
}

// IncRecorded increments the recorded counter for the given action.
func (m *LedgerMetrics) IncRecorded(action string) {
	if m == nil || m.recorded == nil {
		return
	}
	m.recorded.WithLabelValues(normalizeLabel(action)).Inc()
}

// IncRejected increments the rejected counter for the given reason.
func (m *LedgerMetrics) IncRejected(reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// ObserveRecordDuration records how long a ledger append took.
func (m *LedgerMetrics) ObserveRecordDuration(action string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(action)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

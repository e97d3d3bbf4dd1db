package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/bankledger/internal/domain"
)

// Metrics holds the ledger's business metrics. It implements
// usecase.Recorder and eventpublisher.Recorder.
type Metrics struct {
	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsClosed  prometheus.Counter

	// Posting metrics
	Postings      *prometheus.CounterVec
	PostingAmount *prometheus.HistogramVec

	// Failure metrics
	OperationErrors      *prometheus.CounterVec
	ConcurrencyConflicts prometheus.Counter

	// Storage metrics
	SaveLatency prometheus.Histogram

	// Outbox metrics
	EventsPublished *prometheus.CounterVec
}

// New creates and registers all metrics on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates the metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_accounts_created_total",
			Help: "Total number of accounts opened",
		}),
		AccountsClosed: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_accounts_closed_total",
			Help: "Total number of accounts closed",
		}),

		Postings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankledger_postings_total",
				Help: "Total postings by type",
			},
			[]string{"type"},
		),
		PostingAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankledger_posting_amount",
				Help:    "Absolute posting amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"type"},
		),

		OperationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankledger_operation_errors_total",
				Help: "Failed account operations by operation and reason",
			},
			[]string{"operation", "reason"},
		),
		ConcurrencyConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_concurrency_conflicts_total",
			Help: "Saves rejected because the account changed underneath",
		}),

		SaveLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankledger_save_duration_seconds",
			Help:    "Duration of account save transactions",
			Buckets: prometheus.DefBuckets,
		}),

		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankledger_outbox_events_total",
				Help: "Outbox events handed to the publisher by type and status",
			},
			[]string{"event_type", "status"},
		),
	}
}

func (m *Metrics) AccountCreated() { m.AccountsCreated.Inc() }
func (m *Metrics) AccountClosed()  { m.AccountsClosed.Inc() }

// Posted counts a posting and observes its absolute amount.
func (m *Metrics) Posted(kind domain.TransactionType, amount domain.Money) {
	label := string(kind)
	m.Postings.WithLabelValues(label).Inc()
	m.PostingAmount.WithLabelValues(label).Observe(amount.Decimal().Abs().InexactFloat64())
}

// OperationFailed counts a failed operation under a bounded reason label.
func (m *Metrics) OperationFailed(operation string, err error) {
	m.OperationErrors.WithLabelValues(operation, Reason(err)).Inc()
}

func (m *Metrics) ConcurrencyConflict() { m.ConcurrencyConflicts.Inc() }

func (m *Metrics) SaveDuration(d time.Duration) {
	m.SaveLatency.Observe(d.Seconds())
}

// EventPublished counts one publish attempt.
func (m *Metrics) EventPublished(eventType string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.EventsPublished.WithLabelValues(eventType, status).Inc()
}

var reasons = []struct {
	err   error
	label string
}{
	{domain.ErrInvalidAmount, "invalid_amount"},
	{domain.ErrInsufficientFunds, "insufficient_funds"},
	{domain.ErrAccountNotActive, "not_active"},
	{domain.ErrNonZeroBalanceOnClose, "non_zero_balance"},
	{domain.ErrConcurrentModification, "concurrent_modification"},
	{domain.ErrDuplicateAccountNumber, "duplicate_account_number"},
	{domain.ErrInvalidAccountNumber, "invalid_account_number"},
	{domain.ErrAccountNotFound, "not_found"},
	{domain.ErrForbidden, "forbidden"},
	{domain.ErrUnauthorized, "unauthorized"},
}

// Reason maps an error to a low-cardinality label.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return "internal"
}

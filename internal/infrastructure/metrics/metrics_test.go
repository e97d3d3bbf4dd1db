package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/usecase"
)

var _ usecase.Recorder = (*Metrics)(nil)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegisterer(registry)

	m.AccountCreated()
	m.SaveDuration(15 * time.Millisecond)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestRecorderCounts(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.AccountCreated()
	m.AccountCreated()
	m.AccountClosed()
	m.Posted(domain.TransactionTypeDeposit, domain.MustMoney("100"))
	m.Posted(domain.TransactionTypeWithdrawal, domain.MustMoney("-40"))
	m.Posted(domain.TransactionTypeDeposit, domain.MustMoney("5"))
	m.ConcurrencyConflict()
	m.OperationFailed("withdraw", fmt.Errorf("save: %w", domain.ErrInsufficientFunds))
	m.EventPublished(domain.EventTypeAccountCreated, nil)
	m.EventPublished(domain.EventTypeAccountCreated, errors.New("broker down"))

	if got := testutil.ToFloat64(m.AccountsCreated); got != 2 {
		t.Fatalf("accounts created = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.AccountsClosed); got != 1 {
		t.Fatalf("accounts closed = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Postings.WithLabelValues("DEPOSIT")); got != 2 {
		t.Fatalf("deposits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Postings.WithLabelValues("WITHDRAWAL")); got != 1 {
		t.Fatalf("withdrawals = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ConcurrencyConflicts); got != 1 {
		t.Fatalf("conflicts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.OperationErrors.WithLabelValues("withdraw", "insufficient_funds")); got != 1 {
		t.Fatalf("withdraw errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.EventsPublished.WithLabelValues(domain.EventTypeAccountCreated, "error")); got != 1 {
		t.Fatalf("failed publishes = %v, want 1", got)
	}
}

func TestSaveDurationObservesLatency(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegisterer(registry)

	var recorder usecase.Recorder = m
	recorder.SaveDuration(20 * time.Millisecond)
	recorder.SaveDuration(40 * time.Millisecond)

	if got := testutil.CollectAndCount(m.SaveLatency); got != 1 {
		t.Fatalf("save latency series = %d, want 1", got)
	}
	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "bankledger_save_duration_seconds" {
			continue
		}
		if got := mf.GetMetric()[0].GetHistogram().GetSampleCount(); got != 2 {
			t.Fatalf("save latency samples = %d, want 2", got)
		}
		return
	}
	t.Fatal("bankledger_save_duration_seconds not gathered")
}

func TestReason(t *testing.T) {
	tests := map[error]string{
		domain.ErrAccountNotActive:       "not_active",
		domain.ErrConcurrentModification: "concurrent_modification",
		domain.ErrForbidden:              "forbidden",
		errors.New("boom"):               "internal",
	}
	for err, want := range tests {
		if got := Reason(err); got != want {
			t.Errorf("Reason(%v) = %q, want %q", err, got, want)
		}
	}
}

package wallet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds tunables for the wallet service.
type Config struct {
	// Retry budget for wallet reads. Only connection failures are retried.
	ReadRetryAttempts int
	// Base delay between read retries; the actual delay grows linearly
	// with the attempt number.
	ReadRetryDelay time.Duration
}

// CardGateway charges an external card as part of a card deposit. The charge
// happens before the ledger is credited; a gateway failure aborts the
// deposit, and a ledger failure after a successful charge refunds it.
type CardGateway interface {
	ChargeCard(ctx context.Context, userID string, amount decimal.Decimal, currency string) (chargeID string, err error)
	RefundCharge(ctx context.Context, chargeID string) error
}

// MetricsCollector records wallet operation outcomes.
type MetricsCollector interface {
	RecordOperationResult(operation, result string)
	RecordTransaction(txType, currency string, amount decimal.Decimal)
	RecordError(operation, errType string)
}

// NoopMetricsCollector discards all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOperationResult(string, string)              {}
func (NoopMetricsCollector) RecordTransaction(string, string, decimal.Decimal) {}
func (NoopMetricsCollector) RecordError(string, string)                        {}

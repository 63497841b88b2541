package wallet

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"mahfaza/internal/connectivity"
	"mahfaza/internal/models"
	"mahfaza/internal/repositories"
	"mahfaza/internal/repositories/cache"
	"mahfaza/internal/services/currency"

	"github.com/shopspring/decimal"
)

type service struct {
	repo    repositories.WalletRepository
	cache   *cache.CacheService
	policy  currency.PolicyProvider
	network connectivity.Checker
	cards   CardGateway
	metrics MetricsCollector
	config  Config
}

// NewService creates a new wallet service. The card gateway and metrics
// collector are optional; the cache may be nil when Redis is unavailable.
func NewService(
	repo repositories.WalletRepository,
	walletCache *cache.CacheService,
	policy currency.PolicyProvider,
	network connectivity.Checker,
	cards CardGateway,
	metrics MetricsCollector,
	config Config,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if policy == nil {
		panic("policy provider is required")
	}
	if network == nil {
		network = connectivity.Always(true)
	}
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	if config.ReadRetryAttempts <= 0 {
		config.ReadRetryAttempts = 2
	}
	if config.ReadRetryDelay <= 0 {
		config.ReadRetryDelay = time.Second
	}

	return &service{
		repo:    repo,
		cache:   walletCache,
		policy:  policy,
		network: network,
		cards:   cards,
		metrics: metrics,
		config:  config,
	}
}

// Deposit validates and applies a deposit. Validation is fail-fast in a fixed
// order; the repository is called exactly once, with no retry.
func (s *service) Deposit(ctx context.Context, userID, currency string, amount decimal.Decimal, method string) (*models.Transaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("a user id is required to make a deposit: %w", ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("the deposit amount must be greater than zero: %w", ErrInvalidInput)
	}
	if minDeposit := s.policy.MinDeposit(currency); amount.LessThan(minDeposit) {
		return nil, fmt.Errorf("the deposit amount is below the minimum of %s %s: %w", minDeposit, currency, ErrInvalidInput)
	}
	if maxDeposit := s.policy.MaxDeposit(currency); amount.GreaterThan(maxDeposit) {
		return nil, fmt.Errorf("the deposit amount exceeds the maximum of %s %s: %w", maxDeposit, currency, ErrInvalidInput)
	}
	if !s.policy.IsCurrencySupported(currency) {
		return nil, fmt.Errorf("deposits in %s are not supported: %w", currency, ErrInvalidInput)
	}
	if !s.policy.IsDepositMethodSupported(method) {
		return nil, fmt.Errorf("the deposit method %q is not supported: %w", method, ErrInvalidInput)
	}

	// Card deposits charge the card before the ledger is credited. The
	// charge id becomes the ledger reference so the two sides reconcile.
	var chargeID string
	if method == "card" && s.cards != nil {
		id, err := s.cards.ChargeCard(ctx, userID, amount, currency)
		if err != nil {
			s.metrics.RecordError("deposit", "card_charge")
			return nil, fmt.Errorf("the deposit failed because the card could not be charged: %v: %w", err, ErrTransactionFailed)
		}
		chargeID = id
	}

	txn, err := s.repo.Deposit(ctx, userID, currency, amount, method, chargeID)
	if err != nil {
		s.metrics.RecordError("deposit", "repository")
		return nil, s.compensateCardCharge(ctx, chargeID, classifyMutationError("deposit", err))
	}
	if txn == nil {
		s.metrics.RecordError("deposit", "nil_transaction")
		return nil, s.compensateCardCharge(ctx, chargeID,
			fmt.Errorf("the deposit failed for an unknown reason: %w", ErrTransactionFailed))
	}

	s.invalidateWallet(ctx, userID)
	s.metrics.RecordTransaction(models.TransactionTypeDeposit, currency, amount)
	s.metrics.RecordOperationResult("deposit", "success")
	return txn, nil
}

// WithdrawalFee returns the fee charged for withdrawing amount in currency
// at the current policy rate.
func (s *service) WithdrawalFee(currency string, amount decimal.Decimal) decimal.Decimal {
	return CalculateWithdrawalFee(amount, currency, s.policy.TransactionFeePercent(currency))
}

// compensateCardCharge refunds a card charge whose ledger credit failed and
// annotates cause with the charge id so the charge can be reconciled either
// way. cause is returned unchanged when no card was charged.
func (s *service) compensateCardCharge(ctx context.Context, chargeID string, cause error) error {
	if chargeID == "" || s.cards == nil {
		return cause
	}
	if err := s.cards.RefundCharge(ctx, chargeID); err != nil {
		s.metrics.RecordError("deposit", "card_refund")
		log.Printf("refund of card charge %s failed, manual reconciliation needed: %v", chargeID, err)
		return fmt.Errorf("card charge %s was taken and could not be refunded: %w", chargeID, cause)
	}
	return fmt.Errorf("card charge %s was refunded: %w", chargeID, cause)
}

func (s *service) invalidateWallet(ctx context.Context, userID string) {
	if err := s.cache.InvalidateWallet(ctx, userID); err != nil {
		s.metrics.RecordError("cache", "invalidate")
	}
}

// classifyMutationError maps repository failures to service error kinds with
// an operation-specific message. Known kinds survive the translation;
// anything unrecognized becomes ErrTransactionFailed with the cause kept in
// the message for diagnostics.
func classifyMutationError(op string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrInsufficientFunds):
		return fmt.Errorf("the %s was rejected: %v: %w", op, err, ErrInsufficientFunds)
	case errors.Is(err, repositories.ErrWalletNotFound):
		return fmt.Errorf("the %s failed because the wallet was not found: %w", op, ErrTransactionFailed)
	case errors.Is(err, repositories.ErrWalletInactive):
		return fmt.Errorf("the %s failed because the wallet is not active: %w", op, ErrTransactionFailed)
	case isConnectionError(err):
		return fmt.Errorf("the %s could not reach the wallet backend: %w", op, ErrConnection)
	default:
		return fmt.Errorf("the %s failed: %v: %w", op, err, ErrTransactionFailed)
	}
}

// isConnectionError reports whether err looks like a transient network
// failure rather than a domain rejection.
func isConnectionError(err error) bool {
	if errors.Is(err, ErrConnection) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

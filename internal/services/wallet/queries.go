package wallet

import (
	"context"
	"errors"
	"fmt"

	"mahfaza/internal/models"
	"mahfaza/internal/repositories"
	"mahfaza/internal/repositories/cache"
	"mahfaza/internal/retry"
)

// GetWallet loads and integrity-checks the user's wallet. Transient
// connection failures are retried with a linearly growing delay; every other
// failure aborts immediately.
func (s *service) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	if userID == "" {
		return nil, fmt.Errorf("a user id is required to load a wallet: %w", ErrInvalidInput)
	}
	if !s.network.IsConnected(ctx) {
		return nil, fmt.Errorf("loading a wallet requires a network connection: %w", ErrConnection)
	}

	if cached, err := s.cache.GetWallet(ctx, userID); err == nil {
		if err := validateWallet(cached); err == nil {
			s.metrics.RecordOperationResult("get_wallet", "cache_hit")
			return cached, nil
		}
		// Corrupt cache entries are dropped and re-read from the source.
		s.invalidateWallet(ctx, userID)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.metrics.RecordError("cache", "read")
	}

	var w *models.Wallet
	attempts := s.config.ReadRetryAttempts
	err := retry.Do(ctx, attempts, s.config.ReadRetryDelay, func(err error) bool {
		return errors.Is(err, ErrConnection)
	}, func() error {
		loaded, err := s.repo.GetByUserID(ctx, userID)
		if err != nil {
			return classifyFetchError(err)
		}
		if loaded == nil {
			return fmt.Errorf("no wallet exists for this user: %w", ErrDataNotFound)
		}
		w = loaded
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConnection) {
			s.metrics.RecordError("get_wallet", "connection")
			return nil, fmt.Errorf("could not load the wallet after %d attempts: %w", attempts, ErrConnection)
		}
		return nil, err
	}

	if err := validateWallet(w); err != nil {
		s.metrics.RecordError("get_wallet", "corrupted")
		return nil, err
	}

	if err := s.cache.SetWallet(ctx, w); err != nil {
		s.metrics.RecordError("cache", "write")
	}
	s.metrics.RecordOperationResult("get_wallet", "success")
	return w, nil
}

// GetTransactions lists the user's most recent transactions, newest first.
// A single attempt only; reads of history are not retried.
func (s *service) GetTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("a user id is required to list transactions: %w", ErrInvalidInput)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("the transaction limit must be greater than zero: %w", ErrInvalidInput)
	}

	txs, err := s.repo.GetTransactions(ctx, userID, limit)
	if err != nil {
		s.metrics.RecordError("get_transactions", "repository")
		return nil, classifyFetchError(err)
	}
	s.metrics.RecordOperationResult("get_transactions", "success")
	return txs, nil
}

// validateWallet rejects wallets that fail structural or semantic checks.
// These are data-integrity alarms, not user input problems.
func validateWallet(w *models.Wallet) error {
	if w == nil {
		return fmt.Errorf("no wallet exists for this user: %w", ErrDataNotFound)
	}
	if w.ID == "" {
		return fmt.Errorf("the stored wallet is missing its id: %w", ErrDataCorrupted)
	}
	if w.UserID == "" {
		return fmt.Errorf("the stored wallet is missing its user id: %w", ErrDataCorrupted)
	}
	if w.Balances == nil {
		return fmt.Errorf("the stored wallet has no balance map: %w", ErrDataCorrupted)
	}
	for code, amount := range w.Balances {
		if amount.IsNegative() {
			return fmt.Errorf("the stored wallet holds a negative %s balance: %w", code, ErrDataCorrupted)
		}
	}
	return nil
}

// classifyFetchError maps repository read failures to service error kinds.
func classifyFetchError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrWalletNotFound):
		return fmt.Errorf("no wallet exists for this user: %w", ErrDataNotFound)
	case isConnectionError(err):
		return fmt.Errorf("the wallet backend could not be reached: %w", ErrConnection)
	default:
		return fmt.Errorf("reading wallet data failed: %v: %w", err, ErrDataAccess)
	}
}

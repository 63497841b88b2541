package wallet

import (
	"context"
	"fmt"

	"mahfaza/internal/models"

	"github.com/shopspring/decimal"
)

// Withdraw validates and applies a withdrawal. Guards run in a fixed order:
// connectivity, input validation, fee computation, balance sufficiency, daily
// cap, then a single repository call. No mutation happens before every guard
// has passed.
func (s *service) Withdraw(ctx context.Context, userID, currency string, amount decimal.Decimal, method string) (*models.Transaction, error) {
	if !s.network.IsConnected(ctx) {
		return nil, fmt.Errorf("a withdrawal requires a network connection: %w", ErrConnection)
	}

	if userID == "" {
		return nil, fmt.Errorf("a user id is required to make a withdrawal: %w", ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("the withdrawal amount must be greater than zero: %w", ErrInvalidInput)
	}
	if minWithdrawal := s.policy.MinWithdrawal(currency); amount.LessThan(minWithdrawal) {
		return nil, fmt.Errorf("the withdrawal amount is below the minimum of %s %s: %w", minWithdrawal, currency, ErrInvalidInput)
	}
	if maxWithdrawal := s.policy.MaxWithdrawal(currency); amount.GreaterThan(maxWithdrawal) {
		return nil, fmt.Errorf("the withdrawal amount exceeds the maximum of %s %s: %w", maxWithdrawal, currency, ErrInvalidInput)
	}
	if !s.policy.IsCurrencySupported(currency) {
		return nil, fmt.Errorf("withdrawals in %s are not supported: %w", currency, ErrUnsupportedCurrency)
	}
	if !s.policy.IsWithdrawalMethodSupported(method, currency) {
		return nil, fmt.Errorf("the method %q cannot be used to withdraw %s: %w", method, currency, ErrUnsupportedPaymentMethod)
	}

	fee := CalculateWithdrawalFee(amount, currency, s.policy.TransactionFeePercent(currency))
	totalAmount := amount.Add(fee)

	w, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, classifyMutationError("withdrawal", err)
	}

	balance := w.Balance(currency)
	if balance.LessThan(totalAmount) {
		return nil, fmt.Errorf("the withdrawal requires %s %s including a fee of %s but only %s is available: %w",
			totalAmount, currency, fee, balance, ErrInsufficientFunds)
	}

	todayWithdrawals, err := s.repo.GetTodayWithdrawals(ctx, userID, currency)
	if err != nil {
		return nil, classifyMutationError("withdrawal", err)
	}
	dailyLimit := s.policy.DailyWithdrawalLimit(currency)
	if todayWithdrawals.Add(amount).GreaterThan(dailyLimit) {
		return nil, &LimitExceededError{Limit: dailyLimit, Currency: currency}
	}

	txn, err := s.repo.Withdraw(ctx, userID, currency, amount, method, fee)
	if err != nil {
		s.metrics.RecordError("withdraw", "repository")
		return nil, classifyMutationError("withdrawal", err)
	}
	if txn == nil {
		s.metrics.RecordError("withdraw", "nil_transaction")
		return nil, fmt.Errorf("the withdrawal failed for an unknown reason: %w", ErrTransactionFailed)
	}

	s.invalidateWallet(ctx, userID)
	s.metrics.RecordTransaction(models.TransactionTypeWithdraw, currency, amount)
	s.metrics.RecordOperationResult("withdraw", "success")
	return txn, nil
}

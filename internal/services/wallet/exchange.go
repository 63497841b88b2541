package wallet

import (
	"context"
	"fmt"

	"mahfaza/internal/models"
	"mahfaza/internal/repositories"

	"github.com/shopspring/decimal"
)

// Exchange converts amount from one currency to another inside the same
// wallet at the current quoted rate. The conversion fee is charged in the
// source currency.
func (s *service) Exchange(ctx context.Context, userID, fromCurrency, toCurrency string, amount decimal.Decimal) (*models.Transaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("a user id is required to exchange currencies: %w", ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("the exchange amount must be greater than zero: %w", ErrInvalidInput)
	}
	if fromCurrency == toCurrency {
		return nil, fmt.Errorf("an exchange requires two different currencies: %w", ErrInvalidInput)
	}
	if !s.policy.IsCurrencySupported(fromCurrency) {
		return nil, fmt.Errorf("exchanges from %s are not supported: %w", fromCurrency, ErrUnsupportedCurrency)
	}
	if !s.policy.IsCurrencySupported(toCurrency) {
		return nil, fmt.Errorf("exchanges to %s are not supported: %w", toCurrency, ErrUnsupportedCurrency)
	}

	rate, ok := s.policy.ExchangeRate(fromCurrency, toCurrency)
	if !ok || !rate.IsPositive() {
		return nil, fmt.Errorf("no exchange rate is available from %s to %s: %w", fromCurrency, toCurrency, ErrUnsupportedCurrency)
	}

	fee := CalculateWithdrawalFee(amount, fromCurrency, s.policy.TransactionFeePercent(fromCurrency))
	totalAmount := amount.Add(fee)
	toAmount := amount.Mul(rate).Round(DecimalPlaces(toCurrency))

	w, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, classifyMutationError("exchange", err)
	}

	balance := w.Balance(fromCurrency)
	if balance.LessThan(totalAmount) {
		return nil, fmt.Errorf("the exchange requires %s %s including a fee of %s but only %s is available: %w",
			totalAmount, fromCurrency, fee, balance, ErrInsufficientFunds)
	}

	txn, err := s.repo.Exchange(ctx, repositories.ExchangeRequest{
		UserID:       userID,
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
		FromAmount:   amount,
		ToAmount:     toAmount,
		Rate:         rate,
		Fee:          fee,
	})
	if err != nil {
		s.metrics.RecordError("exchange", "repository")
		return nil, classifyMutationError("exchange", err)
	}
	if txn == nil {
		s.metrics.RecordError("exchange", "nil_transaction")
		return nil, fmt.Errorf("the exchange failed for an unknown reason: %w", ErrTransactionFailed)
	}

	s.invalidateWallet(ctx, userID)
	s.metrics.RecordTransaction(models.TransactionTypeExchange, fromCurrency, amount)
	s.metrics.RecordOperationResult("exchange", "success")
	return txn, nil
}

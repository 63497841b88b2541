// Package currency answers per-currency policy questions: deposit and
// withdrawal bounds, daily caps, fee percentages, supported payment methods
// and exchange rates.
package currency

import "github.com/shopspring/decimal"

// Policy holds the limits and fee rate for a single currency.
type Policy struct {
	MinDeposit           decimal.Decimal
	MaxDeposit           decimal.Decimal
	MinWithdrawal        decimal.Decimal
	MaxWithdrawal        decimal.Decimal
	DailyWithdrawalLimit decimal.Decimal
	FeePercent           decimal.Decimal // percentage, e.g. 1 means 1%
}

// PolicyProvider exposes currency limits, fees, method support and rates.
type PolicyProvider interface {
	IsCurrencySupported(code string) bool
	IsDepositMethodSupported(method string) bool
	IsWithdrawalMethodSupported(method, code string) bool

	MinDeposit(code string) decimal.Decimal
	MaxDeposit(code string) decimal.Decimal
	MinWithdrawal(code string) decimal.Decimal
	MaxWithdrawal(code string) decimal.Decimal
	DailyWithdrawalLimit(code string) decimal.Decimal
	TransactionFeePercent(code string) decimal.Decimal

	SupportedCurrencies() []string
	ExchangeRates() map[string]decimal.Decimal
	ExchangeRate(from, to string) (decimal.Decimal, bool)
}

package wallet

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// Currencies carried to eight decimal places; everything else uses two.
var highPrecisionCurrencies = map[string]bool{
	"BTC":  true,
	"ETH":  true,
	"USDT": true,
}

// DecimalPlaces returns the rounding precision used for a currency's amounts.
func DecimalPlaces(currency string) int32 {
	if highPrecisionCurrencies[currency] {
		return 8
	}
	return 2
}

// CalculateWithdrawalFee computes the fee for withdrawing amount in the given
// currency at feePercent (e.g. 1 means 1%). Pure: no I/O, no state, and the
// result is rounded to the currency's precision so repeated calls with the
// same inputs always agree.
func CalculateWithdrawalFee(amount decimal.Decimal, currency string, feePercent decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() || feePercent.IsNegative() {
		return decimal.Zero
	}
	return amount.Mul(feePercent).Div(oneHundred).Round(DecimalPlaces(currency))
}

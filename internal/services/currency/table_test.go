package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_SupportedCurrencies(t *testing.T) {
	table := NewDefaultTable()

	codes := table.SupportedCurrencies()
	assert.Equal(t, []string{"AED", "BTC", "ETH", "EUR", "SAR", "SYP", "TRY", "USD", "USDT"}, codes)

	assert.True(t, table.IsCurrencySupported("USD"))
	assert.False(t, table.IsCurrencySupported("ZZZ"))
	assert.False(t, table.IsCurrencySupported("usd"), "codes are case sensitive")
}

func TestTable_UnknownCurrencyFallsBackToDefaults(t *testing.T) {
	table := NewDefaultTable()

	// Unknown codes get the conservative default bounds rather than zeroes.
	assert.True(t, decimal.NewFromInt(5000).Equal(table.MaxDeposit("ZZZ")))
	assert.True(t, decimal.NewFromInt(10).Equal(table.MinWithdrawal("ZZZ")))
	assert.True(t, decimal.NewFromInt(10000).Equal(table.DailyWithdrawalLimit("ZZZ")))
	assert.True(t, decimal.NewFromInt(1).Equal(table.TransactionFeePercent("ZZZ")))
}

func TestTable_WithdrawalMethods(t *testing.T) {
	table := NewDefaultTable()

	tests := []struct {
		name   string
		method string
		code   string
		want   bool
	}{
		{"bank transfer for fiat", "bank_transfer", "USD", true},
		{"cash pickup for fiat", "cash_pickup", "EUR", true},
		{"agent for fiat", "agent", "TRY", true},
		{"crypto payout for fiat", "crypto", "USD", false},
		{"crypto payout for BTC", "crypto", "BTC", true},
		{"bank transfer for BTC", "bank_transfer", "BTC", false},
		{"unknown method", "carrier_pigeon", "USD", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.IsWithdrawalMethodSupported(tt.method, tt.code))
		})
	}
}

func TestTable_DepositMethods(t *testing.T) {
	table := NewDefaultTable()

	for _, method := range []string{"card", "bank_transfer", "cash", "agent", "crypto"} {
		assert.True(t, table.IsDepositMethodSupported(method), method)
	}
	assert.False(t, table.IsDepositMethodSupported("cheque"))
}

func TestTable_ExchangeRate(t *testing.T) {
	table := NewDefaultTable()

	t.Run("identity", func(t *testing.T) {
		rate, ok := table.ExchangeRate("USD", "USDT")
		require.True(t, ok)
		assert.True(t, decimal.NewFromInt(1).Equal(rate))
	})

	t.Run("cross rate via USD quotes", func(t *testing.T) {
		// 1 BTC = 65000 USD, 1 ETH = 3200 USD.
		rate, ok := table.ExchangeRate("BTC", "ETH")
		require.True(t, ok)
		want := decimal.NewFromInt(65000).Div(decimal.NewFromInt(3200))
		assert.True(t, want.Equal(rate))
	})

	t.Run("inverse rates multiply to one", func(t *testing.T) {
		fwd, ok := table.ExchangeRate("EUR", "TRY")
		require.True(t, ok)
		back, ok := table.ExchangeRate("TRY", "EUR")
		require.True(t, ok)
		product, _ := fwd.Mul(back).Round(10).Float64()
		assert.InDelta(t, 1.0, product, 1e-9)
	})

	t.Run("unknown side has no quote", func(t *testing.T) {
		_, ok := table.ExchangeRate("USD", "ZZZ")
		assert.False(t, ok)
		_, ok = table.ExchangeRate("ZZZ", "USD")
		assert.False(t, ok)
	})
}

func TestTable_SetRateAndPolicy(t *testing.T) {
	table := NewDefaultTable()

	table.SetRate("BTC", decimal.NewFromInt(70000))
	rate, ok := table.ExchangeRate("BTC", "USD")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(70000).Equal(rate))

	table.SetPolicy("NGN", Policy{
		MinDeposit:           decimal.NewFromInt(100),
		MaxDeposit:           decimal.NewFromInt(1000000),
		MinWithdrawal:        decimal.NewFromInt(500),
		MaxWithdrawal:        decimal.NewFromInt(500000),
		DailyWithdrawalLimit: decimal.NewFromInt(1000000),
		FeePercent:           decimal.NewFromInt(2),
	})
	assert.True(t, table.IsCurrencySupported("NGN"))
	assert.True(t, decimal.NewFromInt(2).Equal(table.TransactionFeePercent("NGN")))
}

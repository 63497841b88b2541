package currency

import (
	"log"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// Fallback policy applied to currency codes missing from the table. Unknown
// codes are tolerated rather than rejected so that newly listed currencies
// degrade to conservative bounds instead of hard failures.
var defaultPolicy = Policy{
	MinDeposit:           decimal.NewFromInt(1),
	MaxDeposit:           decimal.NewFromInt(5000),
	MinWithdrawal:        decimal.NewFromInt(10),
	MaxWithdrawal:        decimal.NewFromInt(5000),
	DailyWithdrawalLimit: decimal.NewFromInt(10000),
	FeePercent:           decimal.NewFromInt(1),
}

func defaultPolicies() map[string]Policy {
	return map[string]Policy{
		"USD": {
			MinDeposit:           decimal.NewFromInt(1),
			MaxDeposit:           decimal.NewFromInt(10000),
			MinWithdrawal:        decimal.NewFromInt(10),
			MaxWithdrawal:        decimal.NewFromInt(5000),
			DailyWithdrawalLimit: decimal.NewFromInt(10000),
			FeePercent:           decimal.NewFromInt(1),
		},
		"EUR": {
			MinDeposit:           decimal.NewFromInt(1),
			MaxDeposit:           decimal.NewFromInt(10000),
			MinWithdrawal:        decimal.NewFromInt(10),
			MaxWithdrawal:        decimal.NewFromInt(5000),
			DailyWithdrawalLimit: decimal.NewFromInt(10000),
			FeePercent:           decimal.NewFromInt(1),
		},
		"SYP": {
			MinDeposit:           decimal.NewFromInt(1000),
			MaxDeposit:           decimal.NewFromInt(50000000),
			MinWithdrawal:        decimal.NewFromInt(10000),
			MaxWithdrawal:        decimal.NewFromInt(25000000),
			DailyWithdrawalLimit: decimal.NewFromInt(50000000),
			FeePercent:           decimal.NewFromFloat(0.5),
		},
		"TRY": {
			MinDeposit:           decimal.NewFromInt(10),
			MaxDeposit:           decimal.NewFromInt(300000),
			MinWithdrawal:        decimal.NewFromInt(100),
			MaxWithdrawal:        decimal.NewFromInt(150000),
			DailyWithdrawalLimit: decimal.NewFromInt(300000),
			FeePercent:           decimal.NewFromInt(1),
		},
		"SAR": {
			MinDeposit:           decimal.NewFromInt(5),
			MaxDeposit:           decimal.NewFromInt(40000),
			MinWithdrawal:        decimal.NewFromInt(50),
			MaxWithdrawal:        decimal.NewFromInt(20000),
			DailyWithdrawalLimit: decimal.NewFromInt(40000),
			FeePercent:           decimal.NewFromInt(1),
		},
		"AED": {
			MinDeposit:           decimal.NewFromInt(5),
			MaxDeposit:           decimal.NewFromInt(40000),
			MinWithdrawal:        decimal.NewFromInt(50),
			MaxWithdrawal:        decimal.NewFromInt(20000),
			DailyWithdrawalLimit: decimal.NewFromInt(40000),
			FeePercent:           decimal.NewFromInt(1),
		},
		"BTC": {
			MinDeposit:           decimal.NewFromFloat(0.0001),
			MaxDeposit:           decimal.NewFromInt(2),
			MinWithdrawal:        decimal.NewFromFloat(0.001),
			MaxWithdrawal:        decimal.NewFromFloat(0.2),
			DailyWithdrawalLimit: decimal.NewFromFloat(0.5),
			FeePercent:           decimal.NewFromFloat(0.25),
		},
		"ETH": {
			MinDeposit:           decimal.NewFromFloat(0.001),
			MaxDeposit:           decimal.NewFromInt(50),
			MinWithdrawal:        decimal.NewFromFloat(0.01),
			MaxWithdrawal:        decimal.NewFromInt(5),
			DailyWithdrawalLimit: decimal.NewFromInt(10),
			FeePercent:           decimal.NewFromFloat(0.25),
		},
		"USDT": {
			MinDeposit:           decimal.NewFromInt(1),
			MaxDeposit:           decimal.NewFromInt(10000),
			MinWithdrawal:        decimal.NewFromInt(10),
			MaxWithdrawal:        decimal.NewFromInt(5000),
			DailyWithdrawalLimit: decimal.NewFromInt(10000),
			FeePercent:           decimal.NewFromFloat(0.5),
		},
	}
}

// Exchange rates are quoted as units of USD per one unit of the currency.
func defaultRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"USD":  decimal.NewFromInt(1),
		"EUR":  decimal.NewFromFloat(1.08),
		"SYP":  decimal.NewFromFloat(0.000077),
		"TRY":  decimal.NewFromFloat(0.029),
		"SAR":  decimal.NewFromFloat(0.2667),
		"AED":  decimal.NewFromFloat(0.2723),
		"BTC":  decimal.NewFromInt(65000),
		"ETH":  decimal.NewFromInt(3200),
		"USDT": decimal.NewFromInt(1),
	}
}

var depositMethods = map[string]bool{
	"card":          true,
	"bank_transfer": true,
	"cash":          true,
	"agent":         true,
	"crypto":        true,
}

// Withdrawal methods per currency class. Crypto assets only pay out on-chain.
var (
	fiatWithdrawalMethods = map[string]bool{
		"bank_transfer": true,
		"cash_pickup":   true,
		"agent":         true,
	}
	cryptoWithdrawalMethods = map[string]bool{
		"crypto": true,
	}
	cryptoCurrencies = map[string]bool{
		"BTC":  true,
		"ETH":  true,
		"USDT": true,
	}
)

// Table is a static PolicyProvider backed by in-memory policy and rate maps.
type Table struct {
	mu       sync.RWMutex
	policies map[string]Policy
	rates    map[string]decimal.Decimal

	warnedUnknown sync.Map
}

// NewTable builds a provider from explicit policy and rate maps.
func NewTable(policies map[string]Policy, rates map[string]decimal.Decimal) *Table {
	return &Table{policies: policies, rates: rates}
}

// NewDefaultTable builds a provider with the built-in currency set.
func NewDefaultTable() *Table {
	return NewTable(defaultPolicies(), defaultRates())
}

func (t *Table) policy(code string) Policy {
	t.mu.RLock()
	p, ok := t.policies[code]
	t.mu.RUnlock()
	if ok {
		return p
	}
	// Log the leniency once per unknown code so the fallback is visible.
	if _, seen := t.warnedUnknown.LoadOrStore(code, true); !seen {
		log.Printf("currency: no policy for %q, using default bounds", code)
	}
	return defaultPolicy
}

func (t *Table) IsCurrencySupported(code string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.policies[code]
	return ok
}

func (t *Table) IsDepositMethodSupported(method string) bool {
	return depositMethods[method]
}

func (t *Table) IsWithdrawalMethodSupported(method, code string) bool {
	if cryptoCurrencies[code] {
		return cryptoWithdrawalMethods[method]
	}
	return fiatWithdrawalMethods[method]
}

func (t *Table) MinDeposit(code string) decimal.Decimal    { return t.policy(code).MinDeposit }
func (t *Table) MaxDeposit(code string) decimal.Decimal    { return t.policy(code).MaxDeposit }
func (t *Table) MinWithdrawal(code string) decimal.Decimal { return t.policy(code).MinWithdrawal }
func (t *Table) MaxWithdrawal(code string) decimal.Decimal { return t.policy(code).MaxWithdrawal }

func (t *Table) DailyWithdrawalLimit(code string) decimal.Decimal {
	return t.policy(code).DailyWithdrawalLimit
}

func (t *Table) TransactionFeePercent(code string) decimal.Decimal {
	return t.policy(code).FeePercent
}

func (t *Table) SupportedCurrencies() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	codes := make([]string, 0, len(t.policies))
	for code := range t.policies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (t *Table) ExchangeRates() map[string]decimal.Decimal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]decimal.Decimal, len(t.rates))
	for code, rate := range t.rates {
		out[code] = rate
	}
	return out
}

// ExchangeRate returns how many units of `to` one unit of `from` buys,
// derived from the USD-quoted rates. The second return is false when either
// side has no quote.
func (t *Table) ExchangeRate(from, to string) (decimal.Decimal, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fromUSD, ok := t.rates[from]
	if !ok {
		return decimal.Zero, false
	}
	toUSD, ok := t.rates[to]
	if !ok || toUSD.IsZero() {
		return decimal.Zero, false
	}
	return fromUSD.Div(toUSD), true
}

// SetRate replaces the USD quote for a currency, for rate-feed refreshes.
func (t *Table) SetRate(code string, rate decimal.Decimal) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rates[code] = rate
}

// SetPolicy installs or replaces the policy for a currency.
func (t *Table) SetPolicy(code string, p Policy) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.policies[code] = p
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

// BalanceMap maps a currency code to its balance. It is stored as jsonb.
type BalanceMap map[string]decimal.Decimal

// Value implements the driver.Valuer interface
func (b BalanceMap) Value() (driver.Value, error) {
	if b == nil {
		return json.Marshal(BalanceMap{})
	}
	return json.Marshal(b)
}

// Scan implements the sql.Scanner interface
func (b *BalanceMap) Scan(value interface{}) error {
	if value == nil {
		*b = BalanceMap{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("balance map: unsupported scan type")
	}
	return json.Unmarshal(bytes, b)
}

// Get returns the balance for a currency, zero if the currency has no entry.
func (b BalanceMap) Get(currency string) decimal.Decimal {
	if amount, ok := b[currency]; ok {
		return amount
	}
	return decimal.Zero
}

// Clone returns an independent copy of the map.
func (b BalanceMap) Clone() BalanceMap {
	out := make(BalanceMap, len(b))
	for code, amount := range b {
		out[code] = amount
	}
	return out
}

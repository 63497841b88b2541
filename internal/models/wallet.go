package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Wallet struct {
	ID        string     `gorm:"primarykey;size:64"`
	UserID    string     `gorm:"uniqueIndex;not null;size:64"`
	Balances  BalanceMap `gorm:"type:jsonb;default:'{}'"`
	IsActive  bool       `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Balance returns the balance held in the given currency, zero if none.
func (w *Wallet) Balance(currency string) decimal.Decimal {
	return w.Balances.Get(currency)
}

// WithBalance returns a copy of the wallet with the balance for the given
// currency replaced and UpdatedAt refreshed. The receiver is not mutated.
func (w *Wallet) WithBalance(currency string, amount decimal.Decimal) *Wallet {
	next := *w
	next.Balances = w.Balances.Clone()
	next.Balances[currency] = amount
	next.UpdatedAt = time.Now().UTC()
	return &next
}

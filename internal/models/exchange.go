package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Exchange struct {
	ID           string          `gorm:"primarykey;size:64"`
	UserID       string          `gorm:"index;not null;size:64"`
	FromCurrency string          `gorm:"size:12;not null"`
	ToCurrency   string          `gorm:"size:12;not null"`
	FromAmount   decimal.Decimal `gorm:"type:numeric(32,8);not null"`
	ToAmount     decimal.Decimal `gorm:"type:numeric(32,8);not null"`
	ExchangeRate decimal.Decimal `gorm:"type:numeric(32,8);not null"`
	Fee          decimal.Decimal `gorm:"type:numeric(32,8);default:0"`
	Discount     decimal.Decimal `gorm:"type:numeric(32,8);default:0"`
	Status       string          `gorm:"not null;default:'pending'"`
	CreatedAt    time.Time
}

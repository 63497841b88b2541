package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdraw   = "withdraw"
	TransactionTypeTransfer   = "transfer"
	TransactionTypeExchange   = "exchange"
	TransactionTypeFee        = "fee"
	TransactionTypeRefund     = "refund"
	TransactionTypeAdjustment = "adjustment"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusRejected  = "rejected"
	TransactionStatusCancelled = "cancelled"
)

type Transaction struct {
	ID          string          `gorm:"primarykey;size:64"`
	Type        string          `gorm:"not null;index"`
	SenderID    string          `gorm:"index;size:64"`
	ReceiverID  string          `gorm:"index;size:64"`
	Amount      decimal.Decimal `gorm:"type:numeric(32,8);not null"`
	Currency    string          `gorm:"size:12;not null"`
	Fee         decimal.Decimal `gorm:"type:numeric(32,8);default:0"`
	Discount    decimal.Decimal `gorm:"type:numeric(32,8);default:0"`
	Status      string          `gorm:"not null;default:'pending';index"`
	Method      string          `gorm:"size:32"`
	Notes       string
	ReferenceID string `gorm:"size:64;index"`
	CreatedAt   time.Time
	CompletedAt *time.Time
}

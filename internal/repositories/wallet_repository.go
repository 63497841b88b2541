package repositories

import (
	"context"
	"errors"

	"mahfaza/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrWalletInactive     = errors.New("wallet is not active")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrDuplicateWallet    = errors.New("wallet already exists")
	ErrTransactionFailed  = errors.New("transaction failed")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// WalletRepository is the persistence port for wallet and transaction state.
// Mutating operations (Deposit, Withdraw, Exchange) apply the balance change
// and record the transaction atomically inside one database transaction.
type WalletRepository interface {
	// Core wallet operations
	Create(ctx context.Context, wallet *models.Wallet) error
	GetByUserID(ctx context.Context, userID string) (*models.Wallet, error)
	Update(ctx context.Context, wallet *models.Wallet) error

	// Transaction operations
	GetTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	UpdateTransactionStatus(ctx context.Context, transactionID, status string) error

	// Ledger mutations. Deposit stores reference as the transaction's
	// ReferenceID when non-empty (e.g. an external charge id).
	Deposit(ctx context.Context, userID, currency string, amount decimal.Decimal, method, reference string) (*models.Transaction, error)
	Withdraw(ctx context.Context, userID, currency string, amount decimal.Decimal, method string, fee decimal.Decimal) (*models.Transaction, error)
	Exchange(ctx context.Context, req ExchangeRequest) (*models.Transaction, error)

	// Aggregations
	GetTodayWithdrawals(ctx context.Context, userID, currency string) (decimal.Decimal, error)
}

// ExchangeRequest carries a currency conversion to be applied atomically.
// ToAmount, Rate and Fee are computed by the caller from current quotes.
type ExchangeRequest struct {
	UserID       string
	FromCurrency string
	ToCurrency   string
	FromAmount   decimal.Decimal
	ToAmount     decimal.Decimal
	Rate         decimal.Decimal
	Fee          decimal.Decimal
}

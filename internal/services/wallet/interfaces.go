package wallet

import (
	"context"

	"mahfaza/internal/models"

	"github.com/shopspring/decimal"
)

// Service defines the wallet use-case layer: validated, fee-aware deposit,
// withdrawal and exchange operations plus wallet reads.
type Service interface {
	Deposit(ctx context.Context, userID, currency string, amount decimal.Decimal, method string) (*models.Transaction, error)
	Withdraw(ctx context.Context, userID, currency string, amount decimal.Decimal, method string) (*models.Transaction, error)
	Exchange(ctx context.Context, userID, fromCurrency, toCurrency string, amount decimal.Decimal) (*models.Transaction, error)

	GetWallet(ctx context.Context, userID string) (*models.Wallet, error)
	GetTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error)

	WithdrawalFee(currency string, amount decimal.Decimal) decimal.Decimal
}

package wallet

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Service errors. Callers match on these kinds with errors.Is; messages are
// enriched per operation but the kind is never downgraded.
var (
	ErrInvalidInput             = errors.New("invalid input")
	ErrInsufficientFunds        = errors.New("insufficient funds")
	ErrConnection               = errors.New("network connection unavailable")
	ErrDataNotFound             = errors.New("requested data was not found")
	ErrDataCorrupted            = errors.New("stored data failed integrity checks")
	ErrDataAccess               = errors.New("data access failed")
	ErrTransactionFailed        = errors.New("transaction failed")
	ErrUnsupportedCurrency      = errors.New("unsupported currency")
	ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")
)

// LimitExceededError reports a breached daily withdrawal cap. It carries the
// limit and currency as structured fields so callers do not parse messages.
type LimitExceededError struct {
	Limit    decimal.Decimal
	Currency string
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("the daily withdrawal limit of %s %s has been exceeded", e.Limit, e.Currency)
}

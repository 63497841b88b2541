package handlers

import (
	"errors"

	"mahfaza/internal/models"
	"mahfaza/internal/services/wallet"
	"mahfaza/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// extractUserClaims is a helper function to reduce duplication
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

func userIDFromClaims(claims *models.UserClaims) string {
	return claims.Subject
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	w, err := h.walletService.GetWallet(c.Context(), userIDFromClaims(claims))
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"wallet": w,
	})
}

func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	limit := c.QueryInt("limit", 10)

	txs, err := h.walletService.GetTransactions(c.Context(), userIDFromClaims(claims), limit)
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"transactions": txs,
	})
}

type amountInput struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Method   string          `json:"method"`
}

func (h *WalletHandler) Deposit(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input amountInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	txn, err := h.walletService.Deposit(c.Context(), userIDFromClaims(claims), input.Currency, input.Amount, input.Method)
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"transaction": txn,
	})
}

func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input amountInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	txn, err := h.walletService.Withdraw(c.Context(), userIDFromClaims(claims), input.Currency, input.Amount, input.Method)
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"transaction": txn,
		"fee":         txn.Fee,
	})
}

func (h *WalletHandler) Exchange(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		FromCurrency string          `json:"from_currency"`
		ToCurrency   string          `json:"to_currency"`
		Amount       decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	txn, err := h.walletService.Exchange(c.Context(), userIDFromClaims(claims), input.FromCurrency, input.ToCurrency, input.Amount)
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"transaction": txn,
	})
}

// walletError maps wallet service error kinds to HTTP responses.
func walletError(c *fiber.Ctx, err error) error {
	var limitErr *wallet.LimitExceededError
	switch {
	case errors.As(err, &limitErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":    limitErr.Error(),
			"limit":    limitErr.Limit,
			"currency": limitErr.Currency,
		})
	case errors.Is(err, wallet.ErrInvalidInput),
		errors.Is(err, wallet.ErrUnsupportedCurrency),
		errors.Is(err, wallet.ErrUnsupportedPaymentMethod):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, wallet.ErrInsufficientFunds):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, wallet.ErrDataNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, wallet.ErrConnection):
		return utils.ServiceUnavailable(c, err.Error())
	default:
		return utils.InternalError(c, err.Error())
	}
}

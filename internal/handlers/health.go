package handlers

import (
	"mahfaza/internal/services/currency"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	policy currency.PolicyProvider
}

func NewHealthHandler(policy currency.PolicyProvider) *HealthHandler {
	return &HealthHandler{policy: policy}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Currencies lists the supported currency codes and their current USD quotes.
func (h *HealthHandler) Currencies(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"currencies": h.policy.SupportedCurrencies(),
		"rates":      h.policy.ExchangeRates(),
	})
}

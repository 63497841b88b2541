// Package gateway integrates external payment processors used to fund
// deposits.
package gateway

import (
	"context"
	"fmt"

	"mahfaza/internal/config"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
	"github.com/stripe/stripe-go/v72/refund"
)

// StripeCardGateway charges cards through Stripe. Customers are registered
// with Stripe at onboarding under a "user_<id>" customer id.
type StripeCardGateway struct{}

func NewStripeCardGateway() *StripeCardGateway {
	stripe.Key = config.GetEnv("STRIPE_SECRET_KEY", "")
	return &StripeCardGateway{}
}

// ChargeCard charges the user's default card for the given amount. Amounts
// are converted to the currency's minor unit as Stripe expects.
func (g *StripeCardGateway) ChargeCard(ctx context.Context, userID string, amount decimal.Decimal, currency string) (string, error) {
	if stripe.Key == "" {
		return "", fmt.Errorf("stripe is not configured")
	}

	minorUnits := amount.Shift(2).IntPart()
	params := &stripe.ChargeParams{
		Amount:   stripe.Int64(minorUnits),
		Currency: stripe.String(currency),
		Customer: stripe.String("user_" + userID),
	}
	params.Context = ctx
	params.AddMetadata("user_id", userID)

	ch, err := charge.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe charge failed: %w", err)
	}
	return ch.ID, nil
}

// RefundCharge returns a charge in full, compensating a deposit whose
// ledger credit failed after the card was taken.
func (g *StripeCardGateway) RefundCharge(ctx context.Context, chargeID string) error {
	if stripe.Key == "" {
		return fmt.Errorf("stripe is not configured")
	}

	params := &stripe.RefundParams{
		Charge: stripe.String(chargeID),
	}
	params.Context = ctx

	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("stripe refund failed: %w", err)
	}
	return nil
}

// Package payment wraps the external payment-intent provider. Handlers
// depend on the Intenter interface; Stripe is the production implementation.
package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// Intenter creates a payment intent for an amount in minor units and returns
// the client secret the front end confirms the payment with.
type Intenter interface {
	CreateIntent(ctx context.Context, amountMinor int64) (clientSecret string, err error)
}

// MinorUnits converts a price in major units to integer minor units
// (cents), rounding to the nearest cent.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// StripeIntenter implements Intenter against the Stripe API.
type StripeIntenter struct{}

// NewStripe configures the Stripe client with the given secret key.
func NewStripe(secretKey string) *StripeIntenter {
	stripe.Key = secretKey
	return &StripeIntenter{}
}

func (s *StripeIntenter) CreateIntent(_ context.Context, amountMinor int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("payment: create intent: %w", err)
	}

	return pi.ClientSecret, nil
}

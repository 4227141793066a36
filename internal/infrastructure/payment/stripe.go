// Package payment adapts the Stripe SDK to the ports.PaymentProvider
// contract. The rest of the system only ever sees a client secret or an
// error.
package payment

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// StripeProvider creates card payment intents through the Stripe API.
type StripeProvider struct {
	api *client.API
}

// NewStripeProvider constructs a provider with its own API handle; the
// secret key is fixed for the process lifetime.
func NewStripeProvider(secretKey string) *StripeProvider {
	return &StripeProvider{api: client.New(secretKey, nil)}
}

// CreateIntent registers an intended charge of amount minor currency units
// and returns the client secret for the frontend to confirm.
func (p *StripeProvider) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe create intent: %w", err)
	}
	return intent.ClientSecret, nil
}

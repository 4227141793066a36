package ports

import "context"

// PaymentProvider is the external payment gateway. It either returns a
// client-usable confirmation secret or fails; nothing else is assumed.
type PaymentProvider interface {
	// CreateIntent registers an intended charge of amount minor currency
	// units and returns the client secret.
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// PaymentService prepares payment intents for checkout.
type PaymentService interface {
	// CreateIntent converts a price in major units to minor units and asks
	// the provider for a client secret.
	CreateIntent(ctx context.Context, price float64) (string, error)
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pathagar/bookshop-api/internal/core/domain"
)

type stubPaymentProvider struct {
	lastAmount   int64
	lastCurrency string
	err          error
}

func (p *stubPaymentProvider) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.lastAmount = amount
	p.lastCurrency = currency
	return "pi_secret_abc", nil
}

func TestPaymentService_CreateIntent_ConvertsToMinorUnits(t *testing.T) {
	provider := &stubPaymentProvider{}
	svc := NewPaymentService(provider, discardLogger)

	secret, err := svc.CreateIntent(context.Background(), 10.99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "pi_secret_abc" {
		t.Errorf("secret: got %q", secret)
	}
	if provider.lastAmount != 1099 {
		t.Errorf("amount: want 1099, got %d", provider.lastAmount)
	}
	if provider.lastCurrency != "usd" {
		t.Errorf("currency: want usd, got %q", provider.lastCurrency)
	}
}

func TestPaymentService_CreateIntent_RoundsSubCentPrices(t *testing.T) {
	provider := &stubPaymentProvider{}
	svc := NewPaymentService(provider, discardLogger)

	if _, err := svc.CreateIntent(context.Background(), 19.999); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.lastAmount != 2000 {
		t.Errorf("amount: want 2000, got %d", provider.lastAmount)
	}
}

func TestPaymentService_CreateIntent_NonPositivePrice(t *testing.T) {
	svc := NewPaymentService(&stubPaymentProvider{}, discardLogger)

	for _, price := range []float64{0, -5, 0.001} {
		if _, err := svc.CreateIntent(context.Background(), price); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("price %v: expected ErrInvalidAmount, got %v", price, err)
		}
	}
}

func TestPaymentService_CreateIntent_ProviderFailure(t *testing.T) {
	provider := &stubPaymentProvider{err: errors.New("stripe unavailable")}
	svc := NewPaymentService(provider, discardLogger)

	if _, err := svc.CreateIntent(context.Background(), 10); !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

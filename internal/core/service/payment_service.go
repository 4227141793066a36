package service

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/pathagar/bookshop-api/internal/core/domain"
	"github.com/pathagar/bookshop-api/internal/core/ports"
)

const intentCurrency = "usd"

// PaymentService prepares payment intents through the external provider.
type PaymentService struct {
	provider ports.PaymentProvider
	log      zerolog.Logger
}

func NewPaymentService(provider ports.PaymentProvider, log zerolog.Logger) *PaymentService {
	return &PaymentService{provider: provider, log: log}
}

// CreateIntent converts the price to minor currency units and asks the
// provider for a client secret.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount := int64(math.Round(price * 100))
	if amount <= 0 {
		return "", domain.ErrInvalidAmount
	}

	secret, err := s.provider.CreateIntent(ctx, amount, intentCurrency)
	if err != nil {
		s.log.Error().Err(err).Int64("amount", amount).Msg("payment intent creation failed")
		return "", fmt.Errorf("create intent: %w: %v", domain.ErrUpstream, err)
	}

	s.log.Info().Int64("amount", amount).Msg("payment intent created")
	return secret, nil
}

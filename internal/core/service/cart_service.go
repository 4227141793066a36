package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathagar/bookshop-api/internal/core/domain"
	"github.com/pathagar/bookshop-api/internal/core/ports"
)

// CartService implements cart CRUD and order-payment capture.
type CartService struct {
	repo     ports.CartRepository
	payments ports.PaymentRepository
	activity ActivityRecorder
	log      zerolog.Logger
}

func NewCartService(
	repo ports.CartRepository,
	payments ports.PaymentRepository,
	activity ActivityRecorder,
	log zerolog.Logger,
) *CartService {
	return &CartService{repo: repo, payments: payments, activity: activity, log: log}
}

func (s *CartService) AddItem(ctx context.Context, in ports.AddCartItemInput) (*domain.CartItem, error) {
	if in.Quantity < 0 {
		return nil, domain.ErrNegativeQuantity
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}

	item := &domain.CartItem{
		Email:    in.Email,
		BookID:   in.BookID,
		Name:     in.Name,
		Image:    in.Image,
		Price:    in.Price,
		Quantity: in.Quantity,
	}

	id, err := s.repo.Insert(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}
	item.ID = id

	s.log.Info().Str("id", id).Str("email", in.Email).Msg("cart item added")
	return item, nil
}

func (s *CartService) GetItem(ctx context.Context, id string) (*domain.CartItem, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CartService) ListItems(ctx context.Context, email string) ([]*domain.CartItem, error) {
	return s.repo.List(ctx, email)
}

// SetQuantity applies a last-write-wins quantity update and returns the
// stored item. Applying the same quantity twice leaves identical state.
func (s *CartService) SetQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error) {
	if quantity < 0 {
		return nil, domain.ErrNegativeQuantity
	}

	if err := s.repo.SetQuantity(ctx, id, quantity); err != nil {
		return nil, fmt.Errorf("set quantity: %w", err)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *CartService) RemoveItem(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// CapturePayment finalises an order: insert the payment record, then flip the
// order's paid flag with the transaction id. The flag flip is conditional on
// the order still being unpaid, so the store arbitrates concurrent captures;
// the losing capture is rejected and its payment record removed, keeping the
// false-to-true transition exactly once and 1:1 with a payment record. The
// response is built from the stored state, never from the update intent.
func (s *CartService) CapturePayment(ctx context.Context, in ports.CapturePaymentInput) (*domain.CartItem, error) {
	order, err := s.repo.FindByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Paid {
		return nil, domain.ErrOrderAlreadyPaid
	}

	payment := &domain.Payment{
		Email:         in.Email,
		OrderID:       in.OrderID,
		TransactionID: in.TransactionID,
		Price:         in.Price,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.payments.Insert(ctx, payment); err != nil {
		s.log.Error().Err(err).Str("order_id", in.OrderID).Msg("payment record insert failed")
		return nil, fmt.Errorf("capture payment: %w: %v", domain.ErrUpstream, err)
	}

	matched, err := s.repo.MarkPaid(ctx, in.OrderID, in.TransactionID)
	if err != nil {
		s.log.Error().Err(err).Str("order_id", in.OrderID).Msg("order update failed after payment insert")
		return nil, fmt.Errorf("capture payment: %w: %v", domain.ErrUpstream, err)
	}
	if !matched {
		// Another capture won between the paid check and the flip, or the
		// order was deleted. Either way this payment record must not survive.
		if delErr := s.payments.DeleteByTransactionID(ctx, in.TransactionID); delErr != nil {
			s.log.Error().Err(delErr).
				Str("transaction_id", in.TransactionID).
				Msg("losing payment record cleanup failed")
		}
		if _, findErr := s.repo.FindByID(ctx, in.OrderID); findErr != nil {
			return nil, findErr
		}
		return nil, domain.ErrOrderAlreadyPaid
	}

	s.activity.Enqueue(ports.ActivityInput{
		Email:     in.Email,
		Action:    domain.ActivityOrderPaid,
		Subject:   in.TransactionID,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().
		Str("order_id", in.OrderID).
		Str("transaction_id", in.TransactionID).
		Msg("order captured")

	return s.repo.FindByID(ctx, in.OrderID)
}

// PaymentByTransaction returns the payment record behind a captured order's
// transaction id.
func (s *CartService) PaymentByTransaction(ctx context.Context, transactionID string) (*domain.Payment, error) {
	return s.payments.FindByTransactionID(ctx, transactionID)
}

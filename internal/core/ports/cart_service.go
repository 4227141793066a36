package ports

import (
	"context"

	"github.com/pathagar/bookshop-api/internal/core/domain"
)

// AddCartItemInput carries the fields for a new cart item. Email is the
// resolved principal, set by the handler from the request context.
type AddCartItemInput struct {
	Email    string
	BookID   string
	Name     string
	Image    string
	Price    float64
	Quantity int
}

// CapturePaymentInput finalises an order after the payment provider has
// confirmed the charge.
type CapturePaymentInput struct {
	OrderID       string
	Email         string
	TransactionID string
	Price         float64
}

// CartService covers cart CRUD and order-payment capture.
type CartService interface {
	AddItem(ctx context.Context, in AddCartItemInput) (*domain.CartItem, error)
	GetItem(ctx context.Context, id string) (*domain.CartItem, error)
	ListItems(ctx context.Context, email string) ([]*domain.CartItem, error)
	// SetQuantity is idempotent: applying the same quantity twice leaves the
	// same stored state as applying it once.
	SetQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, id string) error
	// CapturePayment inserts the payment record and marks the order paid.
	// Both halves must succeed; the first failure is reported, never masked
	// by an optimistic response.
	CapturePayment(ctx context.Context, in CapturePaymentInput) (*domain.CartItem, error)
	// PaymentByTransaction looks up the payment record behind a capture.
	PaymentByTransaction(ctx context.Context, transactionID string) (*domain.Payment, error)
}

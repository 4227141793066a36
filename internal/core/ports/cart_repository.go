package ports

import (
	"context"

	"github.com/pathagar/bookshop-api/internal/core/domain"
)

// CartRepository defines persistence for cart items and orders.
type CartRepository interface {
	// Insert stores a new cart item and returns the store-assigned id.
	Insert(ctx context.Context, item *domain.CartItem) (string, error)
	FindByID(ctx context.Context, id string) (*domain.CartItem, error)
	// List returns items, optionally filtered by owner email ("" = all).
	List(ctx context.Context, email string) ([]*domain.CartItem, error)
	// SetQuantity upserts the quantity field (last write wins).
	SetQuantity(ctx context.Context, id string, quantity int) error
	// MarkPaid sets paid=true and the transaction id, conditional on the
	// document still being unpaid. The store arbitrates concurrent captures:
	// matched is false when another capture already won or the document is
	// gone. Callers must branch on matched, not on the update intent.
	MarkPaid(ctx context.Context, id, transactionID string) (matched bool, err error)
	Delete(ctx context.Context, id string) error
}

// PaymentRepository persists payment audit records.
type PaymentRepository interface {
	Insert(ctx context.Context, p *domain.Payment) error
	FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error)
	// DeleteByTransactionID removes a payment record whose capture lost the
	// flag-flip arbitration, keeping captures 1:1 with payment records.
	DeleteByTransactionID(ctx context.Context, transactionID string) error
}

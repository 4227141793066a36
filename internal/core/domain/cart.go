package domain

import (
	"errors"
	"time"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrInvalidAmount    = errors.New("invalid payment amount")
	// ErrOrderAlreadyPaid rejects a second capture attempt. The paid flag
	// transitions false to true exactly once; there is no re-capture contract.
	ErrOrderAlreadyPaid = errors.New("order already paid")
)

// CartItem is a book placed in a principal's cart. Once captured it doubles
// as the order record: paid flips to true and the transaction id is attached.
type CartItem struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	BookID        string  `json:"book_id,omitempty"`
	Name          string  `json:"name"`
	Image         string  `json:"image,omitempty"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	Paid          bool    `json:"paid"`
	TransactionID string  `json:"transaction_id,omitempty"`
}

// Payment is the audit record inserted alongside an order capture,
// exactly one per captured order.
type Payment struct {
	ID            string    `json:"id,omitempty"`
	Email         string    `json:"email"`
	OrderID       string    `json:"order_id"`
	TransactionID string    `json:"transaction_id"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"created_at"`
}

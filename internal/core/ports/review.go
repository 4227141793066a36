package ports

import (
	"context"

	"github.com/pathagar/bookshop-api/internal/core/domain"
)

// ReviewInput carries a new review; Email comes from the resolved principal.
type ReviewInput struct {
	Email   string
	Name    string
	Rating  int
	Comment string
}

type ReviewRepository interface {
	Insert(ctx context.Context, r *domain.Review) (string, error)
	List(ctx context.Context) ([]*domain.Review, error)
}

type ReviewService interface {
	Add(ctx context.Context, in ReviewInput) (*domain.Review, error)
	List(ctx context.Context) ([]*domain.Review, error)
}

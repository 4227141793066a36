package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathagar/bookshop-api/internal/core/domain"
	"github.com/pathagar/bookshop-api/internal/core/ports"
)

// ReviewService implements review creation and listing.
type ReviewService struct {
	repo ports.ReviewRepository
	log  zerolog.Logger
}

func NewReviewService(repo ports.ReviewRepository, log zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, log: log}
}

// Add stores a review owned by the resolved principal.
func (s *ReviewService) Add(ctx context.Context, in ports.ReviewInput) (*domain.Review, error) {
	review := &domain.Review{
		Email:     in.Email,
		Name:      in.Name,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.repo.Insert(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("add review: %w", err)
	}
	review.ID = id

	s.log.Info().Str("email", in.Email).Int("rating", in.Rating).Msg("review added")
	return review, nil
}

func (s *ReviewService) List(ctx context.Context) ([]*domain.Review, error) {
	return s.repo.List(ctx)
}

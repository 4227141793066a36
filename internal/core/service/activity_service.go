package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pathagar/bookshop-api/internal/core/domain"
	"github.com/pathagar/bookshop-api/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService that persists audit entries.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

func (s *activityService) Record(ctx context.Context, in ports.ActivityInput) error {
	entry := &domain.Activity{
		Email:     in.Email,
		Action:    in.Action,
		Subject:   in.Subject,
		Timestamp: in.Timestamp,
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	s.log.Debug().
		Str("email", in.Email).
		Str("action", in.Action).
		Msg("activity recorded")
	return nil
}

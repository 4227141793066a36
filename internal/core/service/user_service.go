package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathagar/bookshop-api/internal/core/domain"
	"github.com/pathagar/bookshop-api/internal/core/ports"
)

// ActivityRecorder is the interface services use to enqueue audit entries.
// Enqueue must never block the request path.
type ActivityRecorder interface {
	Enqueue(in ports.ActivityInput)
}

// UserService implements profile management and role administration.
type UserService struct {
	repo     ports.UserRepository
	roles    ports.RoleStore
	tokens   ports.TokenCodec
	tokenTTL time.Duration
	activity ActivityRecorder
	log      zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	roles ports.RoleStore,
	tokens ports.TokenCodec,
	tokenTTL time.Duration,
	activity ActivityRecorder,
	log zerolog.Logger,
) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &UserService{
		repo:     repo,
		roles:    roles,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		activity: activity,
		log:      log,
	}
}

// UpsertProfile writes the profile and issues a fresh token for email. The
// role field is untouched: a new record defaults to "user" in the store, an
// existing record keeps whatever role an admin assigned.
func (s *UserService) UpsertProfile(ctx context.Context, email string, in ports.ProfileInput) (*domain.User, string, error) {
	user, err := s.writeProfile(ctx, email, in)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(email, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("email", email).Msg("profile upserted, token issued")
	return user, token, nil
}

// UpdateProfile writes the profile without minting a credential.
func (s *UserService) UpdateProfile(ctx context.Context, email string, in ports.ProfileInput) (*domain.User, error) {
	return s.writeProfile(ctx, email, in)
}

func (s *UserService) writeProfile(ctx context.Context, email string, in ports.ProfileInput) (*domain.User, error) {
	now := time.Now().UTC()
	user := &domain.User{
		Email:     email,
		Name:      in.Name,
		Education: in.Education,
		Address:   in.Address,
		Phone:     in.Phone,
		UpdatedAt: now,
	}

	if err := s.repo.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) Profile(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

// IsAdmin reports whether email holds the admin role. An unknown principal is
// simply not an admin, not an error.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	role, err := s.roles.RoleOf(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownPrincipal) {
			return false, nil
		}
		return false, err
	}
	return role == domain.RoleAdmin, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) RemoveUser(ctx context.Context, email string) error {
	if err := s.repo.DeleteByEmail(ctx, email); err != nil {
		return err
	}

	// The cached role must not outlive the account, or a removed admin keeps
	// passing the admin guard until the cache entry expires.
	if err := s.roles.EvictRole(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("role eviction after removal failed")
	}

	s.activity.Enqueue(ports.ActivityInput{
		Email:     email,
		Action:    domain.ActivityAccountRemoved,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Str("email", email).Msg("account removed")
	return nil
}

// MakeAdmin elevates the target to the admin role. The admin guard has
// already vetted the requester; this only applies the write and audits it.
// Two concurrent elevations for the same email race at last-write-wins
// granularity of the store, which is accepted.
func (s *UserService) MakeAdmin(ctx context.Context, requester, email string) error {
	if err := s.roles.SetRole(ctx, email, domain.RoleAdmin); err != nil {
		return err
	}

	s.activity.Enqueue(ports.ActivityInput{
		Email:     requester,
		Action:    domain.ActivityRoleElevated,
		Subject:   email,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Str("email", email).Str("requester", requester).Msg("role elevated to admin")
	return nil
}

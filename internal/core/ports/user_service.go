package ports

import (
	"context"

	"github.com/pathagar/bookshop-api/internal/core/domain"
)

// ProfileInput carries the mutable profile fields.
type ProfileInput struct {
	Name      string
	Education string
	Address   string
	Phone     string
}

// UserService covers profile management and role administration.
type UserService interface {
	// UpsertProfile writes the profile and issues a fresh bearer token for the
	// email. This is the bootstrap path: it is the only operation that both
	// creates a principal and mints a credential.
	UpsertProfile(ctx context.Context, email string, in ProfileInput) (*domain.User, string, error)
	// UpdateProfile writes the profile without issuing a token.
	UpdateProfile(ctx context.Context, email string, in ProfileInput) (*domain.User, error)
	Profile(ctx context.Context, email string) (*domain.User, error)
	// IsAdmin reports the role check; an unknown principal is simply not admin.
	IsAdmin(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	RemoveUser(ctx context.Context, email string) error
	// MakeAdmin elevates the target to the admin role.
	MakeAdmin(ctx context.Context, requester, email string) error
}

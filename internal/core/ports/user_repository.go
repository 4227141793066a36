package ports

import (
	"context"

	"github.com/pathagar/bookshop-api/internal/core/domain"
)

// UserRepository defines persistence for user profiles. The mongo
// implementation also satisfies RoleStore.
type UserRepository interface {
	// Upsert writes the profile fields for user.Email, creating the record on
	// first write. The role field is never touched here.
	Upsert(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	DeleteByEmail(ctx context.Context, email string) error
}

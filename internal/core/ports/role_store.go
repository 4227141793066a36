package ports

import "context"

// RoleStore is the authoritative principal-to-role lookup. The authorization
// guard only ever reads it; SetRole is reserved for the admin-elevation path.
type RoleStore interface {
	// RoleOf returns the persisted role, or domain.ErrUnknownPrincipal when no
	// record exists (a validly signed token for a deleted profile lands here).
	RoleOf(ctx context.Context, email string) (string, error)
	SetRole(ctx context.Context, email, role string) error
	// EvictRole drops any cached role for the principal so a removed account
	// stops authorizing immediately. The authoritative store holds no derived
	// state and treats this as a no-op.
	EvictRole(ctx context.Context, email string) error
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pathagar/bookshop-api/internal/core/domain"
	"github.com/pathagar/bookshop-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	upsertErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Upsert(_ context.Context, user *domain.User) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	existing, ok := r.users[user.Email]
	clone := *user
	if ok {
		// Role and creation time survive a profile rewrite.
		clone.Role = existing.Role
		clone.CreatedAt = existing.CreatedAt
	} else {
		clone.Role = domain.RoleUser
		clone.CreatedAt = time.Now().UTC()
	}
	r.users[user.Email] = &clone
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) DeleteByEmail(_ context.Context, email string) error {
	if _, ok := r.users[email]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, email)
	return nil
}

type stubRoleStore struct {
	roles   map[string]string
	evicted []string
	setErr  error
	roleErr error
}

func newStubRoleStore() *stubRoleStore {
	return &stubRoleStore{roles: make(map[string]string)}
}

func (s *stubRoleStore) RoleOf(_ context.Context, email string) (string, error) {
	if s.roleErr != nil {
		return "", s.roleErr
	}
	role, ok := s.roles[email]
	if !ok {
		return "", domain.ErrUnknownPrincipal
	}
	return role, nil
}

func (s *stubRoleStore) SetRole(_ context.Context, email, role string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.roles[email] = role
	return nil
}

func (s *stubRoleStore) EvictRole(_ context.Context, email string) error {
	delete(s.roles, email)
	s.evicted = append(s.evicted, email)
	return nil
}

type stubTokenCodec struct {
	issued    int
	issueErr  error
	verifyErr error
}

func (c *stubTokenCodec) Issue(subject string, _ time.Duration) (string, error) {
	if c.issueErr != nil {
		return "", c.issueErr
	}
	c.issued++
	return "token-for-" + subject, nil
}

func (c *stubTokenCodec) Verify(token string) (string, error) {
	if c.verifyErr != nil {
		return "", c.verifyErr
	}
	return "reader@example.com", nil
}

func newUserService(repo *stubUserRepo, roles *stubRoleStore, tokens *stubTokenCodec, activity *stubActivity) *UserService {
	return NewUserService(repo, roles, tokens, time.Hour, activity, discardLogger)
}

// ---------------------------------------------------------------------------
// Profile tests
// ---------------------------------------------------------------------------

func TestUserService_UpsertProfile_IssuesToken(t *testing.T) {
	repo := newStubUserRepo()
	tokens := &stubTokenCodec{}
	svc := newUserService(repo, newStubRoleStore(), tokens, &stubActivity{})

	user, token, err := svc.UpsertProfile(context.Background(), "reader@example.com", ports.ProfileInput{
		Name:  "Rokeya",
		Phone: "+880",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if token != "token-for-reader@example.com" {
		t.Errorf("token: got %q", token)
	}
	if user.Name != "Rokeya" {
		t.Errorf("name: want %q, got %q", "Rokeya", user.Name)
	}
	if user.Role != domain.RoleUser {
		t.Errorf("first upsert must default role to %q, got %q", domain.RoleUser, user.Role)
	}
	if tokens.issued != 1 {
		t.Errorf("expected exactly 1 token issued, got %d", tokens.issued)
	}
}

func TestUserService_UpsertProfile_PreservesRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubRoleStore(), &stubTokenCodec{}, &stubActivity{})

	if _, _, err := svc.UpsertProfile(context.Background(), "admin@example.com", ports.ProfileInput{Name: "A"}); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	repo.users["admin@example.com"].Role = domain.RoleAdmin

	user, _, err := svc.UpsertProfile(context.Background(), "admin@example.com", ports.ProfileInput{Name: "B"})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Errorf("profile rewrite must not touch the role, got %q", user.Role)
	}
	if user.Name != "B" {
		t.Errorf("name: want %q, got %q", "B", user.Name)
	}
}

func TestUserService_UpdateProfile_NoToken(t *testing.T) {
	repo := newStubUserRepo()
	tokens := &stubTokenCodec{}
	svc := newUserService(repo, newStubRoleStore(), tokens, &stubActivity{})

	user, err := svc.UpdateProfile(context.Background(), "reader@example.com", ports.ProfileInput{Name: "Rokeya"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Rokeya" {
		t.Errorf("name: want %q, got %q", "Rokeya", user.Name)
	}
	if tokens.issued != 0 {
		t.Errorf("update must not mint a credential, issued %d", tokens.issued)
	}
}

func TestUserService_UpsertProfile_TokenFailure(t *testing.T) {
	repo := newStubUserRepo()
	tokens := &stubTokenCodec{issueErr: errors.New("hmac failure")}
	svc := newUserService(repo, newStubRoleStore(), tokens, &stubActivity{})

	_, _, err := svc.UpsertProfile(context.Background(), "reader@example.com", ports.ProfileInput{})
	if err == nil {
		t.Fatal("expected error when token issuing fails")
	}
}

func TestUserService_Profile_NotFound(t *testing.T) {
	svc := newUserService(newStubUserRepo(), newStubRoleStore(), &stubTokenCodec{}, &stubActivity{})

	_, err := svc.Profile(context.Background(), "ghost@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Role tests
// ---------------------------------------------------------------------------

func TestUserService_IsAdmin(t *testing.T) {
	roles := newStubRoleStore()
	roles.roles["admin@example.com"] = domain.RoleAdmin
	roles.roles["reader@example.com"] = domain.RoleUser
	svc := newUserService(newStubUserRepo(), roles, &stubTokenCodec{}, &stubActivity{})

	cases := []struct {
		email string
		want  bool
	}{
		{"admin@example.com", true},
		{"reader@example.com", false},
		{"ghost@example.com", false}, // unknown principal is not an error
	}
	for _, tc := range cases {
		got, err := svc.IsAdmin(context.Background(), tc.email)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.email, err)
		}
		if got != tc.want {
			t.Errorf("%s: want %v, got %v", tc.email, tc.want, got)
		}
	}
}

func TestUserService_IsAdmin_StoreFailurePropagates(t *testing.T) {
	roles := newStubRoleStore()
	roles.roleErr = errors.New("store down")
	svc := newUserService(newStubUserRepo(), roles, &stubTokenCodec{}, &stubActivity{})

	if _, err := svc.IsAdmin(context.Background(), "reader@example.com"); err == nil {
		t.Fatal("expected store failure to propagate")
	}
}

func TestUserService_MakeAdmin(t *testing.T) {
	roles := newStubRoleStore()
	activity := &stubActivity{}
	svc := newUserService(newStubUserRepo(), roles, &stubTokenCodec{}, activity)

	err := svc.MakeAdmin(context.Background(), "admin@example.com", "reader@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if roles.roles["reader@example.com"] != domain.RoleAdmin {
		t.Errorf("target role: want %q, got %q", domain.RoleAdmin, roles.roles["reader@example.com"])
	}
	if len(activity.entries) != 1 {
		t.Fatalf("expected 1 activity entry, got %d", len(activity.entries))
	}
	entry := activity.entries[0]
	if entry.Action != domain.ActivityRoleElevated {
		t.Errorf("action: want %q, got %q", domain.ActivityRoleElevated, entry.Action)
	}
	if entry.Email != "admin@example.com" || entry.Subject != "reader@example.com" {
		t.Errorf("audit must pair requester and target, got %q / %q", entry.Email, entry.Subject)
	}
}

func TestUserService_MakeAdmin_StoreFailure(t *testing.T) {
	roles := newStubRoleStore()
	roles.setErr = errors.New("store down")
	activity := &stubActivity{}
	svc := newUserService(newStubUserRepo(), roles, &stubTokenCodec{}, activity)

	if err := svc.MakeAdmin(context.Background(), "admin@example.com", "reader@example.com"); err == nil {
		t.Fatal("expected error when role write fails")
	}
	if len(activity.entries) != 0 {
		t.Error("failed elevation must not be audited")
	}
}

// ---------------------------------------------------------------------------
// Account removal tests
// ---------------------------------------------------------------------------

func TestUserService_RemoveUser(t *testing.T) {
	repo := newStubUserRepo()
	roles := newStubRoleStore()
	activity := &stubActivity{}
	svc := newUserService(repo, roles, &stubTokenCodec{}, activity)

	if _, _, err := svc.UpsertProfile(context.Background(), "reader@example.com", ports.ProfileInput{}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.RemoveUser(context.Background(), "reader@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.users) != 0 {
		t.Error("account must be deleted")
	}
	if len(roles.evicted) != 1 || roles.evicted[0] != "reader@example.com" {
		t.Errorf("removal must evict the principal's cached role, evicted %v", roles.evicted)
	}
	if len(activity.entries) != 1 || activity.entries[0].Action != domain.ActivityAccountRemoved {
		t.Error("removal must be audited")
	}
}

func TestUserService_RemoveUser_NotFound(t *testing.T) {
	activity := &stubActivity{}
	svc := newUserService(newStubUserRepo(), newStubRoleStore(), &stubTokenCodec{}, activity)

	if err := svc.RemoveUser(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(activity.entries) != 0 {
		t.Error("failed removal must not be audited")
	}
}

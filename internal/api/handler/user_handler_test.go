package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pathagar/bookshop-api/internal/core/domain"
	"github.com/pathagar/bookshop-api/internal/core/ports"
)

type stubUserService struct {
	admins        map[string]bool
	lastRequester string
	lastTarget    string
	removed       []string
}

func (s *stubUserService) UpsertProfile(_ context.Context, email string, in ports.ProfileInput) (*domain.User, string, error) {
	return &domain.User{Email: email, Name: in.Name, Role: domain.RoleUser}, "token-for-" + email, nil
}

func (s *stubUserService) UpdateProfile(_ context.Context, email string, in ports.ProfileInput) (*domain.User, error) {
	return &domain.User{Email: email, Name: in.Name}, nil
}

func (s *stubUserService) Profile(_ context.Context, email string) (*domain.User, error) {
	if email == "ghost@example.com" {
		return nil, domain.ErrNotFound
	}
	return &domain.User{Email: email}, nil
}

func (s *stubUserService) IsAdmin(_ context.Context, email string) (bool, error) {
	return s.admins[email], nil
}

func (s *stubUserService) ListUsers(_ context.Context) ([]*domain.User, error) {
	return []*domain.User{{Email: "a@example.com"}, {Email: "b@example.com"}}, nil
}

func (s *stubUserService) RemoveUser(_ context.Context, email string) error {
	s.removed = append(s.removed, email)
	return nil
}

func (s *stubUserService) MakeAdmin(_ context.Context, requester, email string) error {
	s.lastRequester = requester
	s.lastTarget = email
	return nil
}

func TestUserHandler_Upsert_ReturnsProfileAndToken(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{})

	c, rec := newTestContext(e, http.MethodPut, "/user/reader@example.com", `{"name":"Rokeya"}`)
	c.SetParamNames("email")
	c.SetParamValues("reader@example.com")

	if err := h.Upsert(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp upsertProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "token-for-reader@example.com" {
		t.Errorf("token: got %q", resp.Token)
	}
	if resp.Result == nil || resp.Result.Email != "reader@example.com" {
		t.Errorf("result: got %+v", resp.Result)
	}
}

func TestUserHandler_AdminCheck(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{admins: map[string]bool{"admin@example.com": true}})

	cases := []struct {
		email string
		want  bool
	}{
		{"admin@example.com", true},
		{"reader@example.com", false},
	}
	for _, tc := range cases {
		c, rec := newTestContext(e, http.MethodGet, "/admin/"+tc.email, "")
		c.SetParamNames("email")
		c.SetParamValues(tc.email)

		if err := h.AdminCheck(c); err != nil {
			t.Fatalf("%s: handler error: %v", tc.email, err)
		}

		var resp adminCheckResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Admin != tc.want {
			t.Errorf("%s: want admin=%v, got %v", tc.email, tc.want, resp.Admin)
		}
	}
}

func TestUserHandler_Profile_NotFoundPropagates(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(e, http.MethodGet, "/userprofile/ghost@example.com", "")
	c.SetParamNames("email")
	c.SetParamValues("ghost@example.com")

	if err := h.Profile(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound to propagate, got %v", err)
	}
}

func TestUserHandler_MakeAdmin_PairsRequesterAndTarget(t *testing.T) {
	e := echo.New()
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, rec := newTestContext(e, http.MethodPut, "/allusers/makeadmin/reader@example.com", "")
	c.SetParamNames("email")
	c.SetParamValues("reader@example.com")
	c.Set("email", "admin@example.com")

	if err := h.MakeAdmin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastRequester != "admin@example.com" || svc.lastTarget != "reader@example.com" {
		t.Errorf("got requester %q target %q", svc.lastRequester, svc.lastTarget)
	}
}

func TestUserHandler_MakeAdmin_NoPrincipal(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(e, http.MethodPut, "/allusers/makeadmin/reader@example.com", "")
	c.SetParamNames("email")
	c.SetParamValues("reader@example.com")

	err := h.MakeAdmin(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a principal, got %v", err)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	e := echo.New()
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, rec := newTestContext(e, http.MethodDelete, "/allusers/dlt/reader@example.com", "")
	c.SetParamNames("email")
	c.SetParamValues("reader@example.com")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.removed) != 1 || svc.removed[0] != "reader@example.com" {
		t.Errorf("removed: got %v", svc.removed)
	}
}

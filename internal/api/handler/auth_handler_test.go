package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/projecthub/api/internal/core/domain"
	"github.com/projecthub/api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	meFn       func(ctx context.Context, actor *domain.Actor) (*domain.User, error)
	updateFn   func(ctx context.Context, actor *domain.Actor, in ports.UpdateProfileInput) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, actor *domain.Actor) (*domain.User, error) {
	return s.meFn(ctx, actor)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, actor *domain.Actor, in ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, actor, in)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Name != "Alice" || in.Email != "alice@example.com" || in.Role != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{
				Token: "tok",
				User:  &domain.User{ID: "u1", Name: in.Name, Email: in.Email, PasswordHash: "hash", Role: domain.RoleUser},
			}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`, nil)

	if err := NewAuthHandler(stub).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusCreated)

	resp := decode[map[string]any](t, rec)
	if resp["token"] != "tok" {
		t.Fatalf("token = %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["role"] != "user" || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["PasswordHash"]; leaked {
		t.Fatal("password hash must not be serialized")
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"Bob","password":"secret1"}`},
		{"short password", `{"name":"Bob","email":"bob@example.com","password":"123"}`},
		{"unknown role", `{"name":"Bob","email":"bob@example.com","password":"secret1","role":"root"}`},
		{"malformed json", `{"name":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/api/auth/register", tt.body, nil)
			err := NewAuthHandler(stub).Register(c)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
			return nil, domain.ErrUserExists
		},
	}
	c, _ := newContext(http.MethodPost, "/api/auth/register",
		`{"name":"Bob","email":"bob@example.com","password":"secret1"}`, nil)

	if err := NewAuthHandler(stub).Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.AuthResult, error) {
			if email == "alice@example.com" && password == "secret1" {
				return &ports.AuthResult{Token: "tok", User: &domain.User{ID: "u1", Email: email}}, nil
			}
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret1"}`, nil)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
	if resp := decode[map[string]any](t, rec); resp["token"] != "tok" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	c, _ = newContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"nope"}`, nil)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Me_RequiresActor(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(_ context.Context, actor *domain.Actor) (*domain.User, error) {
			return &domain.User{ID: actor.ID, Name: "Alice", Role: actor.Role}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newContext(http.MethodGet, "/api/auth/me", "", nil)
	if err := h.Me(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	c, rec := newContext(http.MethodGet, "/api/auth/me", "", testUser)
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
	if resp := decode[map[string]any](t, rec); resp["id"] != testUser.ID {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_UpdateProfile_PassesOptionalFields(t *testing.T) {
	var got ports.UpdateProfileInput
	stub := &stubAuthService{
		updateFn: func(_ context.Context, actor *domain.Actor, in ports.UpdateProfileInput) (*domain.User, error) {
			got = in
			return &domain.User{ID: actor.ID, Name: *in.Name}, nil
		},
	}
	c, rec := newContext(http.MethodPut, "/api/auth/profile",
		`{"name":"Alice B","currentPassword":"secret1","newPassword":"secret2"}`, testUser)

	if err := NewAuthHandler(stub).UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
	if got.Name == nil || *got.Name != "Alice B" {
		t.Fatalf("name not forwarded: %+v", got)
	}
	if got.Email != nil {
		t.Fatalf("absent email must stay nil, got %q", *got.Email)
	}
	if got.CurrentPassword != "secret1" || got.NewPassword != "secret2" {
		t.Fatalf("passwords not forwarded: %+v", got)
	}
}

package ports

import (
	"context"

	"github.com/projecthub/api/internal/core/domain"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // empty defaults to "user"
}

type UpdateProfileInput struct {
	Name            *string
	Email           *string
	CurrentPassword string
	NewPassword     string
}

// AuthResult is returned after a successful register or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, actor *domain.Actor) (*domain.User, error)
	UpdateProfile(ctx context.Context, actor *domain.Actor, in UpdateProfileInput) (*domain.User, error)
}

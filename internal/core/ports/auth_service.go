package ports

import (
	"context"

	"github.com/casazul/real-estate-api/internal/core/domain"
)

// RegisterInput carries the fields accepted on registration. Role is not
// part of it: self-registered accounts always start as RoleUser.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService implements registration and credential verification. Both
// operations return the persisted user; the transport layer turns the user
// snapshot into a cookie token.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
}

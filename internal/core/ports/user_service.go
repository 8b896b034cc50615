package ports

import (
	"context"

	"github.com/casazul/real-estate-api/internal/core/domain"
)

// CreateUserInput carries the fields of the admin-gated user creation
// endpoint. Unlike self-registration, the role is settable here.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UserService defines account use-cases beyond authentication.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	// Create is the admin-gated variant of registration with role control.
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	// UpdateName and UpdateEmail return the updated user so the caller can
	// re-issue the identity token with a fresh snapshot.
	UpdateName(ctx context.Context, userID, name string) (*domain.User, error)
	UpdateEmail(ctx context.Context, userID, email string) (*domain.User, error)
	// UpdatePassword verifies currentPassword against the stored hash
	// before accepting newPassword.
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// Favorites returns the user's favorited properties, locations populated.
	Favorites(ctx context.Context, userID string) ([]*domain.Property, error)
	AddFavorite(ctx context.Context, userID, propertyID string) (*domain.User, error)
	RemoveFavorite(ctx context.Context, userID, propertyID string) (*domain.User, error)
}

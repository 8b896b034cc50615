package ports

import (
	"context"

	"github.com/casazul/real-estate-api/internal/core/domain"
)

// UserUpdate carries the optional self-service profile mutations. Nil fields
// are left untouched by the store.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	// AddFavorite and RemoveFavorite mutate the favorites set with a single
	// atomic document update; both are idempotent.
	AddFavorite(ctx context.Context, userID, propertyID string) (*domain.User, error)
	RemoveFavorite(ctx context.Context, userID, propertyID string) (*domain.User, error)
}

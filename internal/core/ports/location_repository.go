package ports

import (
	"context"

	"github.com/casazul/real-estate-api/internal/core/domain"
)

// LocationFilter carries the query parameters of the location list endpoint.
// State and City are matched as case-insensitive substrings. Sort and Select
// preserve the order the client sent; duplicates are not deduplicated.
type LocationFilter struct {
	State  string
	City   string
	Sort   []string
	Select []string
}

// LocationUpdate carries the mutable fields of a location. Nil fields are
// left untouched.
type LocationUpdate struct {
	State *string
	City  *string
}

// LocationRepository defines persistence operations for locations.
type LocationRepository interface {
	Create(ctx context.Context, location *domain.Location) (*domain.Location, error)
	FindByID(ctx context.Context, id string) (*domain.Location, error)
	List(ctx context.Context, filter LocationFilter) ([]*domain.Location, error)
	Update(ctx context.Context, id string, update LocationUpdate) (*domain.Location, error)
	// Delete removes the location and returns the deleted document.
	Delete(ctx context.Context, id string) (*domain.Location, error)
}

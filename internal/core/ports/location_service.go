package ports

import (
	"context"

	"github.com/casazul/real-estate-api/internal/core/domain"
)

// CreateLocationInput carries the fields of a new location.
type CreateLocationInput struct {
	State string
	City  string
}

// LocationService defines use-case operations for locations.
type LocationService interface {
	List(ctx context.Context, filter LocationFilter) ([]*domain.Location, error)
	Get(ctx context.Context, id string) (*domain.Location, error)
	// States returns the distinct states, sorted, duplicates removed.
	States(ctx context.Context) ([]string, error)
	// CitiesByState returns the distinct cities of locations whose state
	// matches the given value case-insensitively, sorted.
	CitiesByState(ctx context.Context, state string) ([]string, error)
	Create(ctx context.Context, input CreateLocationInput) (*domain.Location, error)
	Update(ctx context.Context, id string, update LocationUpdate) (*domain.Location, error)
	Delete(ctx context.Context, id string) (*domain.Location, error)
}

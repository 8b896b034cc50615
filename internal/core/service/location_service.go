package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/core/ports"
)

// LocationService implements use-case operations for locations.
type LocationService struct {
	locations ports.LocationRepository
	log       zerolog.Logger
}

func NewLocationService(locations ports.LocationRepository, log zerolog.Logger) *LocationService {
	return &LocationService{locations: locations, log: log}
}

func (s *LocationService) List(ctx context.Context, filter ports.LocationFilter) ([]*domain.Location, error) {
	return s.locations.List(ctx, filter)
}

func (s *LocationService) Get(ctx context.Context, id string) (*domain.Location, error) {
	return s.locations.FindByID(ctx, id)
}

// States returns the distinct states sorted alphabetically. Several cities
// share a state, so duplicates are collapsed in memory after the query.
func (s *LocationService) States(ctx context.Context) ([]string, error) {
	locations, err := s.locations.List(ctx, ports.LocationFilter{
		Sort:   []string{"state"},
		Select: []string{"state"},
	})
	if err != nil {
		return nil, err
	}

	states := make([]string, 0, len(locations))
	for _, l := range locations {
		states = append(states, l.State)
	}
	return dedup(states), nil
}

// CitiesByState returns the distinct cities of the given state, sorted.
func (s *LocationService) CitiesByState(ctx context.Context, state string) ([]string, error) {
	if state == "" {
		return nil, domain.NewValidationError("please provide a state")
	}

	locations, err := s.locations.List(ctx, ports.LocationFilter{
		State:  state,
		Sort:   []string{"city"},
		Select: []string{"city"},
	})
	if err != nil {
		return nil, err
	}

	cities := make([]string, 0, len(locations))
	for _, l := range locations {
		cities = append(cities, l.City)
	}
	return dedup(cities), nil
}

func (s *LocationService) Create(ctx context.Context, input ports.CreateLocationInput) (*domain.Location, error) {
	var messages []string
	if input.State == "" {
		messages = append(messages, "please provide a state")
	}
	if input.City == "" {
		messages = append(messages, "please provide a city")
	}
	if len(messages) > 0 {
		return nil, domain.NewValidationError(messages...)
	}

	location, err := s.locations.Create(ctx, &domain.Location{State: input.State, City: input.City})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("location_id", location.ID).Str("city", location.City).Msg("location created")
	return location, nil
}

func (s *LocationService) Update(ctx context.Context, id string, update ports.LocationUpdate) (*domain.Location, error) {
	return s.locations.Update(ctx, id, update)
}

func (s *LocationService) Delete(ctx context.Context, id string) (*domain.Location, error) {
	location, err := s.locations.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("location_id", id).Msg("location deleted")
	return location, nil
}

// dedup removes duplicates preserving first-seen order.
func dedup(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

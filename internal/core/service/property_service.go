package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/core/ports"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 500
	minPrice             = 100
	maxPrice             = 10_000_000
)

// PropertyService implements use-case operations for property listings.
type PropertyService struct {
	properties ports.PropertyRepository
	log        zerolog.Logger
}

func NewPropertyService(properties ports.PropertyRepository, log zerolog.Logger) *PropertyService {
	return &PropertyService{properties: properties, log: log}
}

// List runs the store query and then matches state/city in memory against
// the populated location. The in-memory pass runs after pagination, so a
// page can come back smaller than the limit even when more matches exist
// beyond it; a known limitation of filtering on a referenced entity.
func (s *PropertyService) List(ctx context.Context, filter ports.PropertyFilter) ([]*domain.Property, error) {
	properties, err := s.properties.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if filter.State == "" && filter.City == "" {
		return properties, nil
	}

	matched := make([]*domain.Property, 0, len(properties))
	for _, p := range properties {
		if matchesLocation(p.Location, filter.State, filter.City) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// matchesLocation applies the case-insensitive substring match used for the
// text filters. A property without a populated location never matches.
func matchesLocation(location *domain.Location, state, city string) bool {
	if location == nil {
		return false
	}
	if state != "" && !strings.Contains(strings.ToLower(location.State), strings.ToLower(state)) {
		return false
	}
	if city != "" && !strings.Contains(strings.ToLower(location.City), strings.ToLower(city)) {
		return false
	}
	return true
}

func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	return s.properties.FindByID(ctx, id)
}

func (s *PropertyService) ListByAnnouncer(ctx context.Context, announcerID string) ([]*domain.Property, error) {
	return s.properties.FindByAnnouncer(ctx, announcerID)
}

// Create persists a new listing. The location and announcer references are
// not verified transactionally; a dangling reference is possible.
func (s *PropertyService) Create(ctx context.Context, input ports.CreatePropertyInput) (*domain.Property, error) {
	if err := validateListing(input); err != nil {
		return nil, err
	}

	petAllowed := true
	if input.PetAllowed != nil {
		petAllowed = *input.PetAllowed
	}
	hasGarage := false
	if input.HasGarage != nil {
		hasGarage = *input.HasGarage
	}

	property, err := s.properties.Create(ctx, &domain.Property{
		Title:           input.Title,
		Description:     input.Description,
		Price:           input.Price,
		LocationID:      input.LocationID,
		AnnouncerID:     input.AnnouncerID,
		AnnounceType:    input.AnnounceType,
		PetAllowed:      petAllowed,
		NumberBedrooms:  input.NumberBedrooms,
		NumberBathrooms: input.NumberBathrooms,
		HasGarage:       hasGarage,
		Images:          input.Images,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("property_id", property.ID).
		Str("announcer_id", property.AnnouncerID).
		Str("announce_type", string(property.AnnounceType)).
		Msg("property created")
	return property, nil
}

func (s *PropertyService) Update(ctx context.Context, id string, update ports.PropertyUpdate) (*domain.Property, error) {
	var messages []string
	if update.Title != nil && len(*update.Title) > maxTitleLength {
		messages = append(messages, "the title can have at most 100 characters")
	}
	if update.Description != nil && len(*update.Description) > maxDescriptionLength {
		messages = append(messages, "the description can have at most 500 characters")
	}
	if update.Price != nil && (*update.Price < minPrice || *update.Price > maxPrice) {
		messages = append(messages, priceRangeMessage())
	}
	if update.AnnounceType != nil && *update.AnnounceType != domain.AnnounceSale && *update.AnnounceType != domain.AnnounceRent {
		messages = append(messages, string(*update.AnnounceType)+" is not a valid announce type")
	}
	if len(messages) > 0 {
		return nil, domain.NewValidationError(messages...)
	}

	return s.properties.Update(ctx, id, update)
}

func (s *PropertyService) Delete(ctx context.Context, id string) (*domain.Property, error) {
	property, err := s.properties.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("property_id", id).Msg("property deleted")
	return property, nil
}

func validateListing(input ports.CreatePropertyInput) error {
	var messages []string
	if input.Title == "" {
		messages = append(messages, "please provide the listing title")
	} else if len(input.Title) > maxTitleLength {
		messages = append(messages, "the title can have at most 100 characters")
	}
	if input.Description == "" {
		messages = append(messages, "please provide the listing description")
	} else if len(input.Description) > maxDescriptionLength {
		messages = append(messages, "the description can have at most 500 characters")
	}
	if input.Price < minPrice || input.Price > maxPrice {
		messages = append(messages, priceRangeMessage())
	}
	if input.LocationID == "" {
		messages = append(messages, "please provide the property location")
	}
	if input.AnnouncerID == "" {
		messages = append(messages, "please provide the announcer id")
	}
	if input.AnnounceType != domain.AnnounceSale && input.AnnounceType != domain.AnnounceRent {
		messages = append(messages, "please tell whether the property is for sale or for rent")
	}
	if input.NumberBedrooms < 1 {
		messages = append(messages, "the property must have at least one bedroom")
	}
	if input.NumberBathrooms < 1 {
		messages = append(messages, "the property must have at least one bathroom")
	}
	if len(input.Images) == 0 {
		messages = append(messages, "please provide the URL of at least one picture")
	} else if len(input.Images) > 10 {
		messages = append(messages, "only up to ten pictures are allowed")
	}
	if len(messages) > 0 {
		return domain.NewValidationError(messages...)
	}
	return nil
}

func priceRangeMessage() string {
	return fmt.Sprintf("the price must be between %d and %d", minPrice, maxPrice)
}

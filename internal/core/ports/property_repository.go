package ports

import (
	"context"

	"github.com/casazul/real-estate-api/internal/core/domain"
)

// Comparison operators accepted in numeric filters.
const (
	OpGreater      = ">"
	OpGreaterEqual = ">="
	OpEqual        = "="
	OpLess         = "<"
	OpLessEqual    = "<="
)

// NumericFilter is one parsed `field<op>value` token. Only fields on the
// numeric allow-list (price, numberBedrooms, numberBathrooms) ever reach the
// repository; multiple filters on the same field accumulate into one
// compound range.
type NumericFilter struct {
	Field string
	Op    string
	Value int64
}

// PropertyFilter carries everything the property list endpoint translates
// from the query string. Pointer fields distinguish "absent" (unfiltered)
// from an explicit false/zero value.
type PropertyFilter struct {
	Title        string
	PetAllowed   *bool
	HasGarage    *bool
	AnnounceType *domain.AnnounceType
	Numeric      []NumericFilter
	Sort         []string
	Select       []string
	// State and City are matched in memory against the populated location
	// after the paged store query ran.
	State string
	City  string
	Page  int
	Limit int
}

// PropertyUpdate carries the mutable fields of a property listing. Nil
// fields are left untouched.
type PropertyUpdate struct {
	Title           *string
	Description     *string
	Price           *int64
	LocationID      *string
	AnnounceType    *domain.AnnounceType
	PetAllowed      *bool
	NumberBedrooms  *int
	NumberBathrooms *int
	HasGarage       *bool
	Images          []string
}

// PropertyRepository defines persistence operations for property listings.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) (*domain.Property, error)
	// FindByID returns the property with its announcer populated.
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	// List applies the store-level filters, sort, projection and pagination,
	// and returns the page with each property's location populated.
	List(ctx context.Context, filter PropertyFilter) ([]*domain.Property, error)
	// FindByIDs returns the properties matching ids, locations populated.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Property, error)
	FindByAnnouncer(ctx context.Context, announcerID string) ([]*domain.Property, error)
	Update(ctx context.Context, id string, update PropertyUpdate) (*domain.Property, error)
	Delete(ctx context.Context, id string) (*domain.Property, error)
}

package ports

import (
	"context"

	"github.com/casazul/real-estate-api/internal/core/domain"
)

// CreatePropertyInput carries the fields of a new listing. Images holds the
// final URL list, whether sent directly or produced by the image uploader.
type CreatePropertyInput struct {
	Title           string
	Description     string
	Price           int64
	LocationID      string
	AnnouncerID     string
	AnnounceType    domain.AnnounceType
	PetAllowed      *bool
	NumberBedrooms  int
	NumberBathrooms int
	HasGarage       *bool
	Images          []string
}

// PropertyService defines use-case operations for property listings.
type PropertyService interface {
	// List runs the filtered, paged query and applies the in-memory
	// state/city match on the populated location.
	List(ctx context.Context, filter PropertyFilter) ([]*domain.Property, error)
	Get(ctx context.Context, id string) (*domain.Property, error)
	ListByAnnouncer(ctx context.Context, announcerID string) ([]*domain.Property, error)
	Create(ctx context.Context, input CreatePropertyInput) (*domain.Property, error)
	Update(ctx context.Context, id string, update PropertyUpdate) (*domain.Property, error)
	Delete(ctx context.Context, id string) (*domain.Property, error)
}

// ImageUploader streams validated image payloads to the external object
// store and returns their public URLs.
type ImageUploader interface {
	Upload(ctx context.Context, images []ImageUpload) ([]string, error)
}

// ImageUpload is one in-memory image payload from a multipart request.
type ImageUpload struct {
	Filename string
	Size     int64
	Data     []byte
}

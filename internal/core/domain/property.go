package domain

import "time"

// AnnounceType tells whether a property is announced for sale or for rent.
type AnnounceType string

const (
	AnnounceSale AnnounceType = "sale"
	AnnounceRent AnnounceType = "rent"
)

// ParseAnnounceType maps a raw filter value onto an AnnounceType. Only "sale"
// selects sale announcements; any other non-empty value defaults to rent.
// The invalid→default case is deliberate and mirrors how clients use the
// filter (everything that is not explicitly a sale search is a rent search).
func ParseAnnounceType(s string) AnnounceType {
	if s == string(AnnounceSale) {
		return AnnounceSale
	}
	return AnnounceRent
}

// Property is a real-estate listing.
type Property struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	// LocationID references a Location document. The reference is not
	// verified transactionally on create, so a dangling id is possible.
	LocationID      string       `json:"-"`
	AnnouncerID     string       `json:"-"`
	AnnounceType    AnnounceType `json:"announceType"`
	PetAllowed      bool         `json:"petAllowed"`
	NumberBedrooms  int          `json:"numberBedrooms"`
	NumberBathrooms int          `json:"numberBathrooms"`
	HasGarage       bool         `json:"hasGarage"`
	Images          []string     `json:"images"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`

	// Location and Announcer carry populated references when the query
	// asked for them; nil otherwise.
	Location  *Location `json:"location,omitempty"`
	Announcer *User     `json:"announcer,omitempty"`
}

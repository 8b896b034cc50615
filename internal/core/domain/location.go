package domain

import "time"

// Location is a state/city pair a property can be announced in.
// City names are unique across the whole collection, regardless of state.
type Location struct {
	ID        string    `json:"id"`
	State     string    `json:"state"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package domain

import "time"

// Role is the authorization level of a user account.
type Role string

const (
	RoleUser      Role = "user"
	RoleAnnouncer Role = "announcer"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a raw string onto a known Role. Unknown values fall back to
// RoleUser so a forged or mistyped role can never grant extra access.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAnnouncer:
		return RoleAnnouncer
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// Valid reports whether the role is one of the three known levels.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAnnouncer || r == RoleAdmin
}

// User models a registered account.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	// FavoriteIDs holds the ids of the properties the user favorited.
	FavoriteIDs []string  `json:"propertiesFavorited"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Snapshot is the denormalized user view embedded in identity tokens and
// returned by the auth endpoints. It goes stale until the token is re-issued.
type Snapshot struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Snapshot returns the token payload view of the user.
func (u *User) Snapshot() Snapshot {
	return Snapshot{
		UserID:    u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

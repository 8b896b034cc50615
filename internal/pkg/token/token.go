// Package token issues and verifies the signed identity token exchanged with
// clients through the http-only "token" cookie.
package token

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/casazul/real-estate-api/internal/core/domain"
)

// CookieName is the cookie the identity token travels in.
const CookieName = "token"

const defaultLifetime = 30 * 24 * time.Hour

// UserClaims is the JWT payload: a denormalized snapshot of the user at
// issuance time plus the registered expiry claim.
type UserClaims struct {
	UserID    string      `json:"userId"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	jwt.RegisteredClaims
}

// Snapshot converts the claims back into the domain snapshot.
func (c *UserClaims) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		UserID:    c.UserID,
		Name:      c.Name,
		Email:     c.Email,
		Role:      c.Role,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// Service signs and verifies identity tokens with a shared HS256 secret.
type Service struct {
	secret   []byte
	lifetime time.Duration
	// secureCookie marks the cookie Secure; enabled in production.
	secureCookie bool
}

// NewService creates a token Service. A non-positive lifetime falls back to
// 30 days.
func NewService(secret string, lifetime time.Duration, secureCookie bool) *Service {
	if lifetime <= 0 {
		lifetime = defaultLifetime
	}
	return &Service{secret: []byte(secret), lifetime: lifetime, secureCookie: secureCookie}
}

// Issue signs a token embedding the given user snapshot. It fails when the
// signing secret is unset.
func (s *Service) Issue(snapshot domain.Snapshot) (string, error) {
	if len(s.secret) == 0 {
		return "", domain.ErrMissingSecret
	}

	now := time.Now()
	claims := UserClaims{
		UserID:    snapshot.UserID,
		Name:      snapshot.Name,
		Email:     snapshot.Email,
		Role:      snapshot.Role,
		CreatedAt: snapshot.CreatedAt,
		UpdatedAt: snapshot.UpdatedAt,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a signed token. Every failure mode (malformed
// input, signature mismatch, expiry) collapses into ErrInvalidToken; callers
// must treat it as "no identity", never as a hard error.
func (s *Service) Verify(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// Attach sets the identity cookie on the response. The cookie is http-only
// and carries no explicit expiry, so it lives until the browser session ends
// or Clear is called. SameSite stays permissive for cross-site clients.
func (s *Service) Attach(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteNoneMode,
	})
}

// Clear overwrites the identity cookie with an already-expired empty one.
func (s *Service) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   -1,
	})
}

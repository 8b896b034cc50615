package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/casazul/real-estate-api/internal/core/domain"
)

// LoginRequired rejects anonymous requests with 401. Routes that also gate
// on role compose RestrictTo after this one.
func LoginRequired() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CurrentUser(c); !ok {
				return domain.ErrUnauthorized
			}
			return next(c)
		}
	}
}

// RestrictTo rejects callers whose role is not in the enumerated allow-set
// with 403. It assumes LoginRequired already ran; an anonymous request
// reaching it is reported as forbidden, not as a missing login.
func RestrictTo(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := CurrentUser(c)
			if !ok {
				return domain.ErrForbidden
			}
			if _, ok := allowed[claims.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/casazul/real-estate-api/internal/pkg/token"
)

// userContextKey is where the resolved identity lives in the echo context.
const userContextKey = "user"

// Identify resolves the caller's identity from the token cookie, best-effort.
// It never rejects a request: a missing cookie or a failed verification both
// leave the request anonymous and move on. Rejections are the job of the
// gates in require.go.
func Identify(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(token.CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				// Invalid or expired token: proceed as anonymous.
				return next(c)
			}

			c.Set(userContextKey, claims)
			return next(c)
		}
	}
}

// CurrentUser returns the identity resolved by Identify, if any.
func CurrentUser(c echo.Context) (*token.UserClaims, bool) {
	claims, ok := c.Get(userContextKey).(*token.UserClaims)
	return claims, ok && claims != nil
}

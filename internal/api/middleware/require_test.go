package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/pkg/token"
)

func contextWithRole(e *echo.Echo, role domain.Role) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set(userContextKey, &token.UserClaims{UserID: "user-1", Role: role})
	return c
}

func TestLoginRequired_Anonymous(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	handler := LoginRequired()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLoginRequired_Identified(t *testing.T) {
	e := echo.New()
	c := contextWithRole(e, domain.RoleUser)

	called := false
	handler := LoginRequired()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRestrictTo_AllowedRole(t *testing.T) {
	e := echo.New()
	c := contextWithRole(e, domain.RoleAnnouncer)

	called := false
	handler := RestrictTo(domain.RoleAdmin, domain.RoleAnnouncer)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRestrictTo_WrongRole(t *testing.T) {
	e := echo.New()
	c := contextWithRole(e, domain.RoleUser)

	handler := RestrictTo(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRestrictTo_MissingIdentity(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	handler := RestrictTo(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

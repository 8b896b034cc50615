package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/casazul/real-estate-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, map[string]any) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_NotFoundSentinels(t *testing.T) {
	for _, err := range []error{
		domain.ErrUserNotFound,
		domain.ErrLocationNotFound,
		domain.ErrPropertyNotFound,
	} {
		code, body := renderError(t, err)
		if code != http.StatusNotFound {
			t.Fatalf("%v: expected 404, got %d", err, code)
		}
		if body["err"] != err.Error() {
			t.Fatalf("%v: unexpected envelope %+v", err, body)
		}
	}
}

func TestErrorHandler_InvalidID(t *testing.T) {
	code, body := renderError(t, domain.ErrInvalidID)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if body["err"] != "please provide a valid id" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}

func TestErrorHandler_ValidationMessages(t *testing.T) {
	// one message collapses to a plain string
	code, body := renderError(t, domain.NewValidationError("name is required"))
	if code != http.StatusBadRequest || body["err"] != "name is required" {
		t.Fatalf("unexpected single-message envelope: %d %+v", code, body)
	}

	// several messages stay a list
	code, body = renderError(t, domain.NewValidationError("name is required", "email is required"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	msgs, ok := body["err"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("expected two messages, got %+v", body["err"])
	}
}

func TestErrorHandler_DuplicateKey(t *testing.T) {
	code, body := renderError(t, &domain.DuplicateKeyError{Field: "email"})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	obj, ok := body["err"].(map[string]any)
	if !ok {
		t.Fatalf("expected object envelope, got %+v", body["err"])
	}
	if obj["duplicateField"] != "email" {
		t.Fatalf("unexpected duplicate envelope: %+v", obj)
	}
}

func TestErrorHandler_AuthGates(t *testing.T) {
	code, _ := renderError(t, domain.ErrUnauthorized)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}

	code, _ = renderError(t, domain.ErrForbidden)
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"))
	if code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
	if body["err"] != "rate limit exceeded" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}

func TestErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	code, body := renderError(t, errors.New("connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body["err"] == "connection reset by peer" {
		t.Fatal("internal error details must not leak to clients")
	}
}

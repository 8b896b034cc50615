package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/casazul/real-estate-api/internal/core/domain"
)

// errorEnvelope is the canonical failure envelope. Err holds a plain
// message, a list of validation messages, or a duplicate-key object.
type errorEnvelope struct {
	Err any `json:"err"`
}

// duplicateKeyBody mirrors the envelope clients get when a unique index is
// violated.
type duplicateKeyBody struct {
	Error          string `json:"error"`
	DuplicateField string `json:"duplicateField"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"err": <message|messages|object>}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, errorEnvelope{Err: body})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Field-level validation failures: a single message stays a string, so
	// clients see the same shape for simple rejections.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		if len(ve.Messages) == 1 {
			return http.StatusBadRequest, ve.Messages[0]
		}
		return http.StatusBadRequest, ve.Messages
	}

	var dke *domain.DuplicateKeyError
	if errors.As(err, &dke) {
		return http.StatusBadRequest, duplicateKeyBody{
			Error:          "duplicate value entered",
			DuplicateField: dke.Field,
		}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrLocationNotFound),
		errors.Is(err, domain.ErrPropertyNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, "please provide a valid id"
	case errors.Is(err, domain.ErrWrongPassword):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "login required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "you do not have permission to perform this action"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "something went wrong, please try again later"
}

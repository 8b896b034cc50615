package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/casazul/real-estate-api/internal/api/metrics"
)

// CacheStore is the slice of the response cache this middleware consumes.
// The Redis-backed implementation lives in infrastructure/db/redis.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}

// CacheResponse serves rendered GET responses from the cache for ttl before
// hitting the handler again. The cache key is the request path plus the raw
// query string, so each filter combination caches separately. Failures on
// the cache path are best-effort: a broken store never breaks the request.
func CacheResponse(store CacheStore, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if store == nil || c.Request().Method != http.MethodGet {
				return next(c)
			}

			ctx := c.Request().Context()
			key := c.Request().URL.RequestURI()

			if body, err := store.Get(ctx, key); err == nil {
				metrics.CacheTotal.WithLabelValues("hit").Inc()
				return c.JSONBlob(http.StatusOK, body)
			}
			metrics.CacheTotal.WithLabelValues("miss").Inc()

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = rec

			if err := next(c); err != nil {
				return err
			}
			if rec.status == http.StatusOK {
				_ = store.Set(ctx, key, rec.buf.Bytes(), ttl)
			}
			return nil
		}
	}
}

// bodyRecorder tees the response body so a successful render can be stored.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (r *bodyRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

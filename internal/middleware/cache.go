package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/media-catalog/internal/config"
)

// captureWriter captures the response body and status while forwarding them
// to the client, so a successful list response can be stored after the
// handler ran.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 || cw.size+int64(len(b)) <= cw.limit {
		cw.buf.Write(b)
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// NewEntryListCache returns middleware for the /api/entries group.  GET
// responses are cached in Redis keyed by query string; any write request
// passing through bumps a generation counter that is part of every GET key,
// so a create/update/delete immediately invalidates all cached pages.  With
// no Redis client the middleware is a pass-through.
func NewEntryListCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	genKey := cfg.Prefix + ":entries:gen"

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			if c.Request().Method != http.MethodGet {
				err := next(c)
				// Bump the generation even when the handler failed: a 500
				// may still have written, and an extra miss is harmless.
				_ = rdb.Incr(context.Background(), genKey).Err()
				return err
			}

			gen, _ := rdb.Get(ctx, genKey).Int64()
			sum := sha1.Sum([]byte(c.Request().URL.RawQuery))
			key := fmt.Sprintf("%s:entries:%d:%x", cfg.Prefix, gen, sum[:])

			if body, err := rdb.Get(ctx, key).Bytes(); err == nil && len(body) > 0 {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: int64(cfg.MaxBodyBytes)}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK && cw.size == int64(cw.buf.Len()) {
				_ = rdb.SetEx(context.Background(), key, cw.buf.Bytes(), cfg.TTL).Err()
			}
			return nil
		}
	}
}

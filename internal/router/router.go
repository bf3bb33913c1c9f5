package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/labstack/echo/v4" // the Echo web framework handles routing
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/media-catalog/internal/config"
	"github.com/iliyamo/media-catalog/internal/handler"
	"github.com/iliyamo/media-catalog/internal/middleware"
)

// RegisterRoutes wires the whole API surface onto the provided Echo
// instance:
//
//	GET    /health               liveness probe
//	GET    /api/entries          paginated catalog list (optionally cached)
//	POST   /api/entries          create entry
//	PUT    /api/entries/:id      partial update
//	DELETE /api/entries/:id      delete entry
//	POST   /api/auth/register    create account + session cookies (rate limited)
//	POST   /api/auth/login       start session (rate limited)
//	POST   /api/auth/refresh     new access cookie from refresh cookie (rate limited)
//	POST   /api/auth/logout      clear session cookies (rate limited)
//	GET    /api/auth/me          session's user profile (requires access cookie)
//
// CORS allows the single configured browser origin with credentials so the
// session cookies flow on cross-origin requests.  rdb may be nil; rate
// limiting then runs in-process and list caching is disabled.
func RegisterRoutes(e *echo.Echo, cfg config.Config, entries *handler.EntryHandler, auth *handler.AuthHandler, rdb *redis.Client) {
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))

	e.GET("/health", handler.Health)

	eg := e.Group("/api/entries")
	eg.Use(middleware.NewEntryListCache(config.LoadCacheConfig(), rdb))
	eg.GET("", entries.List)
	eg.POST("", entries.Create)
	eg.PUT("/:id", entries.Update)
	eg.DELETE("/:id", entries.Delete)

	// The limiter guards every auth route: credential endpoints against
	// brute force, refresh/logout against token grinding.
	ag := e.Group("/api/auth")
	ag.Use(middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb))
	ag.POST("/register", auth.Register)
	ag.POST("/login", auth.Login)
	ag.POST("/refresh", auth.Refresh)
	ag.POST("/logout", auth.Logout)
	ag.GET("/me", auth.Me, middleware.RequireAuth(cfg.JWTSecret))
}

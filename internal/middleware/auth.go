package middleware // middleware contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware

    "github.com/iliyamo/media-catalog/internal/utils"
)

// AccessCookie is the name of the cookie carrying the short-lived access
// token; RefreshCookie carries the long-lived refresh token.  Both are set
// httpOnly by the auth handlers so scripts never see them.
const (
    AccessCookie  = "app_access"
    RefreshCookie = "app_refresh"
)

// RequireAuth returns an Echo middleware that validates the access-token
// cookie and injects the token's user id into the request context under
// "user_id".  The provided secret must match the one used when issuing
// tokens.  Missing, malformed or expired tokens all answer 401; the
// middleware never reveals which of those it was.
func RequireAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            cookie, err := c.Cookie(AccessCookie)
            if err != nil || cookie.Value == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
            }
            uid, err := utils.ParseUserID(secret, cookie.Value)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
            }
            c.Set("user_id", uid)
            return next(c)
        }
    }
}

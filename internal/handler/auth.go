package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/media-catalog/internal/config"
	"github.com/iliyamo/media-catalog/internal/middleware"
	"github.com/iliyamo/media-catalog/internal/model"
	"github.com/iliyamo/media-catalog/internal/repository"
	"github.com/iliyamo/media-catalog/internal/utils"
)

// UserStore is the persistence surface the auth handlers need.  It is
// implemented by *repository.UserRepo; tests supply an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, email, name, passwordHash string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// AuthHandler bundles dependencies for the session endpoints.  Sessions are
// stateless: both tokens are signed JWTs delivered as httpOnly cookies and
// nothing is recorded server-side.  A known gap follows from that design:
// logout only clears the cookies, so a captured token stays valid until its
// natural expiry.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	if users == nil {
		panic("nil store passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type userResp struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Register handles POST /api/auth/register: create the user, then start a
// session right away by setting both token cookies.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password required"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		log.Printf("auth: hash password failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, strings.TrimSpace(req.Name), hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Email already in use"})
		}
		log.Printf("auth: create user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}

	if err := h.setSessionCookies(c, uid); err != nil {
		log.Printf("auth: issue tokens failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, userResp{ID: uid, Email: req.Email, Name: strings.TrimSpace(req.Name)})
}

// Login handles POST /api/auth/login.  Unknown email and wrong password
// answer the same generic 401 so the endpoint leaks no enumeration signal.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}
		log.Printf("auth: query user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	if err := h.setSessionCookies(c, u.ID); err != nil {
		log.Printf("auth: issue tokens failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, userResp{ID: u.ID, Email: u.Email, Name: u.Name})
}

// Refresh handles POST /api/auth/refresh.  It reads the refresh cookie,
// verifies it and issues a new access cookie only; the refresh token is not
// rotated.
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(middleware.RefreshCookie)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "No refresh token"})
	}
	uid, err := utils.ParseUserID(h.Cfg.JWTSecret, cookie.Value)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, h.Cfg.AccessTTLMin)
	if err != nil {
		log.Printf("auth: issue access failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	c.SetCookie(h.sessionCookie(middleware.AccessCookie, access.Token, h.Cfg.AccessTTLMin*60))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// Logout handles POST /api/auth/logout by clearing both cookies.  Nothing is
// invalidated server-side.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie(middleware.AccessCookie, "", -1))
	c.SetCookie(h.sessionCookie(middleware.RefreshCookie, "", -1))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// Me handles GET /api/auth/me behind the auth guard and returns the profile
// of the session's user.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
		}
		log.Printf("auth: load user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, userResp{ID: u.ID, Email: u.Email, Name: u.Name})
}

// setSessionCookies issues both tokens for a user and attaches them as
// cookies whose lifetimes match the token TTLs.
func (h *AuthHandler) setSessionCookies(c echo.Context, uid uint64) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, h.Cfg.AccessTTLMin)
	if err != nil {
		return err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.JWTSecret, uid, h.Cfg.RefreshTTLDays)
	if err != nil {
		return err
	}
	c.SetCookie(h.sessionCookie(middleware.AccessCookie, access.Token, h.Cfg.AccessTTLMin*60))
	c.SetCookie(h.sessionCookie(middleware.RefreshCookie, refresh.Token, h.Cfg.RefreshTTLDays*24*60*60))
	return nil
}

// sessionCookie builds a session cookie: httpOnly, SameSite=Lax, Secure in
// prod, path "/".  maxAge -1 clears the cookie.
func (h *AuthHandler) sessionCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.Cfg.IsProd(),
	}
}

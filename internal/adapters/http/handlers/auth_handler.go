package handlers

import (
	"errors"
	"strings"
	"time"

	"infrapulse-api/internal/adapters/http/middleware"
	"infrapulse-api/internal/config"
	"infrapulse-api/internal/core/services"
	"infrapulse-api/internal/pkg/response"
	"infrapulse-api/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	tokenSvc    *token.Service
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, tokenSvc *token.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokenSvc:    tokenSvc,
		cfg:         cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

// Login handles staff login
// @Summary Login
// @Description Authenticate by login ID and password, set the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.LoginID == "" {
		return response.BadRequest(c, "Login ID is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	input := &services.LoginInput{
		LoginID:  strings.TrimSpace(req.LoginID),
		Password: req.Password,
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User does not exist")
		case errors.Is(err, services.ErrInvalidPassword):
			return response.Unauthorized(c, "Invalid password")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	h.setSessionCookie(c, result.SessionToken)

	// The role lets the client route to the right dashboard
	return response.Success(c, "Login successful", fiber.Map{
		"role": result.Staff.Role,
	})
}

// Logout handles logout
// @Summary Logout
// @Description Clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearSessionCookie(c)
	return response.Success(c, "Logout successful", nil)
}

// VerifyToken introspects the current session cookie
// @Summary Verify session token
// @Description Return the decoded session payload for the current cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/verify-token [get]
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	sessionToken := c.Cookies(middleware.SessionCookieName)
	if sessionToken == "" {
		return response.Unauthorized(c, "Unauthorized: No token found")
	}

	claims, err := h.tokenSvc.VerifySession(sessionToken)
	if err != nil {
		// Expired and forged read the same from outside
		return response.Unauthorized(c, "Invalid or expired token")
	}

	return response.Success(c, "", fiber.Map{
		"payload": fiber.Map{
			"user_id":  claims.UserID,
			"login_id": claims.LoginID,
			"role":     claims.Role,
		},
	})
}

// setSessionCookie writes the HTTP-only session cookie. Max-age stays
// above the token TTL so expiry is enforced by token verification.
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, sessionToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sessionToken,
		Path:     "/",
		MaxAge:   h.cfg.Cookie.MaxAgeHrs * 60 * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearSessionCookie overwrites the cookie with an empty value and an
// expired date so every compliant client drops it.
func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Domain:   h.cfg.Cookie.Domain,
	})
}

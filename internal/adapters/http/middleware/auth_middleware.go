package middleware

import (
	"errors"
	"log"

	"infrapulse-api/internal/core/domain"
	"infrapulse-api/internal/pkg/response"
	"infrapulse-api/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "jwt"

// Protected gates a route behind a valid session cookie. Missing,
// malformed and expired tokens all answer 401 with the same body so
// the failure kind does not leak; the distinction is kept for logs.
func Protected(tokenSvc *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionToken := c.Cookies(SessionCookieName)
		if sessionToken == "" {
			return response.Unauthorized(c, "Unauthorized")
		}

		claims, err := tokenSvc.VerifySession(sessionToken)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				log.Printf("🔑 Session rejected (expired) on %s", c.Path())
			} else {
				log.Printf("🔑 Session rejected (invalid) on %s", c.Path())
			}
			return response.Unauthorized(c, "Unauthorized")
		}

		role, ok := domain.ParseRole(claims.Role)
		if !ok {
			log.Printf("🔑 Session rejected (unknown role %q) on %s", claims.Role, c.Path())
			return response.Unauthorized(c, "Unauthorized")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("loginID", claims.LoginID)
		c.Locals("role", role)

		return c.Next()
	}
}

// RequireRoles answers 403 when the session role is not in the set.
// Must run after Protected.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(domain.Role)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}

		return response.Forbidden(c, "Access denied")
	}
}

// SystemAdminOnly allows only the system_admin tier
func SystemAdminOnly() fiber.Handler {
	return RequireRoles(domain.RoleSystemAdmin)
}

// CompanyAdminOnly allows only the company_admin tier
func CompanyAdminOnly() fiber.Handler {
	return RequireRoles(domain.RoleCompanyAdmin)
}

// AdminOnly allows either admin tier
func AdminOnly() fiber.Handler {
	return RequireRoles(domain.RoleSystemAdmin, domain.RoleCompanyAdmin)
}

// CallerRole reads the authenticated role from the request context
func CallerRole(c *fiber.Ctx) domain.Role {
	if role, ok := c.Locals("role").(domain.Role); ok {
		return role
	}
	return ""
}

// CallerID reads the authenticated staff ID from the request context
func CallerID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

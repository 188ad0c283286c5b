package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"infrapulse-api/internal/core/domain"
	"infrapulse-api/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedApp(t *testing.T, tokenSvc *token.Service, extra ...fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New()
	handlers := append([]fiber.Handler{Protected(tokenSvc)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"login_id": c.Locals("loginID"),
			"role":     CallerRole(c).String(),
		})
	})
	app.Get("/guarded", handlers...)
	return app
}

func requestWithCookie(sessionToken string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionToken})
	}
	return req
}

func TestProtectedRejectsMissingCookie(t *testing.T) {
	tokenSvc := token.NewService("test-secret", "infrapulse-test", time.Hour, 15*time.Minute)
	app := newGuardedApp(t, tokenSvc)

	resp, err := app.Test(requestWithCookie(""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRejectsInvalidAndExpiredTokens(t *testing.T) {
	tokenSvc := token.NewService("test-secret", "infrapulse-test", time.Hour, 15*time.Minute)
	app := newGuardedApp(t, tokenSvc)

	resp, err := app.Test(requestWithCookie("not-a-token"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Signed with a different secret
	foreign := token.NewService("other-secret", "infrapulse-test", time.Hour, 15*time.Minute)
	forged, err := foreign.IssueSession(1, "mallory", "system_admin")
	require.NoError(t, err)
	resp, err = app.Test(requestWithCookie(forged))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Expired
	expiredSvc := token.NewService("test-secret", "infrapulse-test", -time.Minute, 15*time.Minute)
	expired, err := expiredSvc.IssueSession(1, "tanaka", "staff_user")
	require.NoError(t, err)
	resp, err = app.Test(requestWithCookie(expired))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedPassesValidSession(t *testing.T) {
	tokenSvc := token.NewService("test-secret", "infrapulse-test", time.Hour, 15*time.Minute)
	app := newGuardedApp(t, tokenSvc)

	session, err := tokenSvc.IssueSession(7, "tanaka", "company_admin")
	require.NoError(t, err)

	resp, err := app.Test(requestWithCookie(session))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtectedRejectsUnknownRoleClaim(t *testing.T) {
	tokenSvc := token.NewService("test-secret", "infrapulse-test", time.Hour, 15*time.Minute)
	app := newGuardedApp(t, tokenSvc)

	session, err := tokenSvc.IssueSession(7, "tanaka", "superuser")
	require.NoError(t, err)

	resp, err := app.Test(requestWithCookie(session))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRoleGates(t *testing.T) {
	tokenSvc := token.NewService("test-secret", "infrapulse-test", time.Hour, 15*time.Minute)

	cases := []struct {
		name string
		gate fiber.Handler
		role domain.Role
		want int
	}{
		{"system admin passes SystemAdminOnly", SystemAdminOnly(), domain.RoleSystemAdmin, fiber.StatusOK},
		{"company admin blocked by SystemAdminOnly", SystemAdminOnly(), domain.RoleCompanyAdmin, fiber.StatusForbidden},
		{"company admin passes CompanyAdminOnly", CompanyAdminOnly(), domain.RoleCompanyAdmin, fiber.StatusOK},
		{"staff blocked by CompanyAdminOnly", CompanyAdminOnly(), domain.RoleStaffUser, fiber.StatusForbidden},
		{"system admin passes AdminOnly", AdminOnly(), domain.RoleSystemAdmin, fiber.StatusOK},
		{"company admin passes AdminOnly", AdminOnly(), domain.RoleCompanyAdmin, fiber.StatusOK},
		{"staff blocked by AdminOnly", AdminOnly(), domain.RoleStaffUser, fiber.StatusForbidden},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			app := newGuardedApp(t, tokenSvc, c.gate)

			session, err := tokenSvc.IssueSession(1, "caller", c.role.String())
			require.NoError(t, err)

			resp, err := app.Test(requestWithCookie(session))
			require.NoError(t, err)
			assert.Equal(t, c.want, resp.StatusCode)
		})
	}
}

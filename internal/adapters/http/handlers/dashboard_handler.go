package handlers

import (
	"infrapulse-api/internal/adapters/http/middleware"
	"infrapulse-api/internal/adapters/persistence/repositories"
	"infrapulse-api/internal/core/domain"
	"infrapulse-api/internal/core/services"
	"infrapulse-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles the dashboard summary endpoint
type DashboardHandler struct {
	dashboardService *services.DashboardService
	staffRepo        repositories.StaffRepository
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, staffRepo repositories.StaffRepository) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		staffRepo:        staffRepo,
	}
}

// Summary returns aggregate counters for the caller's company
// @Summary Dashboard summary
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	company := ""
	if middleware.CallerRole(c) != domain.RoleSystemAdmin {
		caller, err := h.staffRepo.GetByID(c.Context(), middleware.CallerID(c))
		if err != nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		company = caller.CompanyName
	}

	summary, err := h.dashboardService.Summary(c.Context(), company)
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "", summary)
}

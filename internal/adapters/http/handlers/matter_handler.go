package handlers

import (
	"errors"
	"time"

	"infrapulse-api/internal/adapters/http/middleware"
	"infrapulse-api/internal/adapters/persistence/repositories"
	"infrapulse-api/internal/core/domain"
	"infrapulse-api/internal/core/services"
	"infrapulse-api/internal/pkg/pagination"
	"infrapulse-api/internal/pkg/response"
	"infrapulse-api/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// MatterHandler handles construction matter endpoints
type MatterHandler struct {
	matterService *services.MatterService
	staffRepo     repositories.StaffRepository
}

// NewMatterHandler creates a new matter handler
func NewMatterHandler(matterService *services.MatterService, staffRepo repositories.StaffRepository) *MatterHandler {
	return &MatterHandler{
		matterService: matterService,
		staffRepo:     staffRepo,
	}
}

// Register registers a new construction matter
// @Summary Register construction
// @Tags Constructions
// @Accept json
// @Produce json
// @Param body body services.RegisterMatterInput true "New matter"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /constructions [post]
func (h *MatterHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterMatterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	company, err := h.callerCompany(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	matter, err := h.matterService.Register(c.Context(), company, &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to register construction")
	}

	return response.Created(c, "Construction registered successfully", fiber.Map{
		"matter": matter,
	})
}

// List lists matters of the caller's company
// @Summary List constructions
// @Tags Constructions
// @Produce json
// @Success 200 {object} response.Response
// @Router /constructions [get]
func (h *MatterHandler) List(c *fiber.Ctx) error {
	company, err := h.callerCompany(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	matters, total, err := h.matterService.List(c.Context(), company, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list constructions")
	}

	return response.Success(c, "", fiber.Map{
		"matters": matters,
		"meta":    params.Meta(total),
	})
}

// Get fetches one matter by matter number
// @Summary Get construction
// @Tags Constructions
// @Produce json
// @Param matterNo path string true "Matter number"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /constructions/{matterNo} [get]
func (h *MatterHandler) Get(c *fiber.Ctx) error {
	matter, err := h.matterService.Get(c.Context(), c.Params("matterNo"))
	if err != nil {
		if errors.Is(err, services.ErrMatterNotFound) {
			return response.NotFound(c, "Matter not found")
		}
		return response.InternalServerError(c, "Failed to fetch construction")
	}

	return response.Success(c, "", fiber.Map{"matter": matter})
}

// Update updates a matter identified by its original matter number
// @Summary Update construction
// @Tags Constructions
// @Accept json
// @Produce json
// @Param matterNo path string true "Matter number"
// @Param body body services.UpdateMatterInput true "Updated matter"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /constructions/{matterNo} [put]
func (h *MatterHandler) Update(c *fiber.Ctx) error {
	var input services.UpdateMatterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	matter, err := h.matterService.Update(c.Context(), c.Params("matterNo"), &input)
	if err != nil {
		if errors.Is(err, services.ErrMatterNotFound) {
			return response.NotFound(c, "Matter not found")
		}
		return response.InternalServerError(c, "Failed to update construction")
	}

	return response.Success(c, "Construction updated successfully", fiber.Map{
		"matter": matter,
	})
}

// Upcoming lists maintenance inspections falling due soon
// @Summary Upcoming maintenance inspections
// @Description Inspections derived from delivery dates and enabled milestone flags
// @Tags Maintenance
// @Produce json
// @Param days query int false "Look-ahead window in days (default 90)"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /maintenance [get]
func (h *MatterHandler) Upcoming(c *fiber.Ctx) error {
	company, err := h.callerCompany(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	days := c.QueryInt("days", 90)
	if days < 1 {
		days = 90
	}

	inspections, err := h.matterService.ListUpcoming(c.Context(), company, time.Duration(days)*24*time.Hour)
	if err != nil {
		return response.InternalServerError(c, "Failed to list inspections")
	}

	return response.Success(c, "", fiber.Map{"inspections": inspections})
}

// callerCompany resolves the caller's company scope
func (h *MatterHandler) callerCompany(c *fiber.Ctx) (string, error) {
	if middleware.CallerRole(c) == domain.RoleSystemAdmin {
		return "", nil
	}

	caller, err := h.staffRepo.GetByID(c.Context(), middleware.CallerID(c))
	if err != nil {
		return "", err
	}
	return caller.CompanyName, nil
}

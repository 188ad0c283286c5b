package handlers

import (
	"infrapulse-api/internal/adapters/persistence/models"
	"infrapulse-api/internal/adapters/persistence/repositories"
	"infrapulse-api/internal/pkg/response"
	"infrapulse-api/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// HomeownerHandler handles homeowner registration endpoints
type HomeownerHandler struct {
	homeownerRepo repositories.HomeownerRepository
}

// NewHomeownerHandler creates a new homeowner handler
func NewHomeownerHandler(homeownerRepo repositories.HomeownerRepository) *HomeownerHandler {
	return &HomeownerHandler{homeownerRepo: homeownerRepo}
}

// RegisterHomeownerRequest represents a homeowner registration
type RegisterHomeownerRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

// Register registers a new homeowner
// @Summary Register homeowner
// @Tags Homeowners
// @Accept json
// @Produce json
// @Param body body RegisterHomeownerRequest true "New homeowner"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /homeowners [post]
func (h *HomeownerHandler) Register(c *fiber.Ctx) error {
	var req RegisterHomeownerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	owner := &models.Homeowner{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}

	if err := h.homeownerRepo.Create(c.Context(), owner); err != nil {
		return response.InternalServerError(c, "Failed to register homeowner")
	}

	return response.Created(c, "Homeowner registration successfully done", fiber.Map{
		"homeowner": owner,
	})
}

// List lists all homeowners
// @Summary List homeowners
// @Tags Homeowners
// @Produce json
// @Success 200 {object} response.Response
// @Router /homeowners [get]
func (h *HomeownerHandler) List(c *fiber.Ctx) error {
	owners, err := h.homeownerRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch homeowners")
	}

	return response.Success(c, "", fiber.Map{"homeowners": owners})
}

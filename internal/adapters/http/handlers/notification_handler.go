package handlers

import (
	"errors"

	"infrapulse-api/internal/core/services"
	"infrapulse-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles the inspection milestone toggles
type NotificationHandler struct {
	matterService *services.MatterService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(matterService *services.MatterService) *NotificationHandler {
	return &NotificationHandler{matterService: matterService}
}

// GetFlags reads the milestone toggles of a matter
// @Summary Get notification preferences
// @Tags Notifications
// @Produce json
// @Param matter_no query string true "Matter number"
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) GetFlags(c *fiber.Ctx) error {
	matterNo := c.Query("matter_no")
	if matterNo == "" {
		return response.BadRequest(c, "Matter number is required")
	}

	flags, err := h.matterService.GetNotificationFlags(c.Context(), matterNo)
	if err != nil {
		if errors.Is(err, services.ErrMatterNotFound) {
			// Absent matter reads as all-off, matching the original UI
			return response.Success(c, "", &services.NotificationFlags{})
		}
		return response.InternalServerError(c, "Failed to fetch preferences")
	}

	return response.Success(c, "", flags)
}

// UpdateFlagsRequest represents a preferences update request
type UpdateFlagsRequest struct {
	MatterNo   string `json:"matter_no"`
	SixMonths  bool   `json:"six_months"`
	OneYear    bool   `json:"one_year"`
	ThreeYears bool   `json:"three_years"`
	TenYears   bool   `json:"ten_years"`
}

// UpdateFlags sets the milestone toggles of a matter
// @Summary Update notification preferences
// @Tags Notifications
// @Accept json
// @Produce json
// @Param body body UpdateFlagsRequest true "Preferences"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications [post]
func (h *NotificationHandler) UpdateFlags(c *fiber.Ctx) error {
	var req UpdateFlagsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.MatterNo == "" {
		return response.BadRequest(c, "Matter number is required")
	}

	flags := &services.NotificationFlags{
		SixMonths:  req.SixMonths,
		OneYear:    req.OneYear,
		ThreeYears: req.ThreeYears,
		TenYears:   req.TenYears,
	}

	if err := h.matterService.SetNotificationFlags(c.Context(), req.MatterNo, flags); err != nil {
		if errors.Is(err, services.ErrMatterNotFound) {
			return response.NotFound(c, "Matter not found")
		}
		return response.InternalServerError(c, "Failed to update preferences")
	}

	return response.Success(c, "Preferences updated successfully", nil)
}

package handlers

import (
	"errors"
	"strconv"

	"infrapulse-api/internal/adapters/http/middleware"
	"infrapulse-api/internal/adapters/persistence/repositories"
	"infrapulse-api/internal/core/domain"
	"infrapulse-api/internal/core/services"
	"infrapulse-api/internal/pkg/pagination"
	"infrapulse-api/internal/pkg/response"
	"infrapulse-api/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// StaffHandler handles staff administration endpoints
type StaffHandler struct {
	staffService      *services.StaffService
	credentialService *services.CredentialService
	staffRepo         repositories.StaffRepository
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *services.StaffService, credentialService *services.CredentialService, staffRepo repositories.StaffRepository) *StaffHandler {
	return &StaffHandler{
		staffService:      staffService,
		credentialService: credentialService,
		staffRepo:         staffRepo,
	}
}

// ListStaff lists staff of the caller's company
// @Summary List staff
// @Description List staff records of the caller's company, role-ordered
// @Tags Staff
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /company-admin [get]
func (h *StaffHandler) ListStaff(c *fiber.Ctx) error {
	company, err := h.callerCompany(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	out, err := h.staffService.ListStaff(c.Context(), company, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list staff")
	}

	return response.Success(c, "", fiber.Map{
		"staff": out.Staff,
		"meta":  params.Meta(out.Total),
	})
}

// EditStaff applies an admin staff edit, staging a credential change
// when the request carries a new password
// @Summary Edit staff
// @Description Update a staff record; a changed password is staged behind email verification
// @Tags Staff
// @Accept json
// @Produce json
// @Param body body services.UpdateStaffInput true "Staff record"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /company-admin [post]
func (h *StaffHandler) EditStaff(c *fiber.Ctx) error {
	var input services.UpdateStaffInput
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

	if err := h.staffService.AuthorizeEdit(c.Context(), middleware.CallerRole(c), company, &input); err != nil {
		switch {
		case errors.Is(err, services.ErrStaffNotFound):
			return response.NotFound(c, "Staff not found")
		case errors.Is(err, services.ErrRoleNotValid):
			return response.BadRequest(c, "Role is not valid")
		default:
			return response.Forbidden(c, "Access denied")
		}
	}

	result, err := h.credentialService.StageOrUpdate(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStaffNotFound):
			return response.NotFound(c, "Staff not found")
		default:
			return response.InternalServerError(c, "Failed to update staff")
		}
	}

	if result.PendingVerification {
		return response.Success(c, "Password change pending verification. Email sent.", nil)
	}
	return response.Success(c, "Staff details updated (no password change).", nil)
}

// CreateStaff creates a staff_user account in the caller's company
// @Summary Create staff
// @Tags Staff
// @Accept json
// @Produce json
// @Param body body services.CreateStaffInput true "New staff"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /company-admin/staff [post]
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	var input services.CreateStaffInput
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

	staff, err := h.staffService.CreateStaff(c.Context(), middleware.CallerRole(c), company, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoginIDTaken), errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, "Login ID or email already exists")
		case errors.Is(err, services.ErrRoleForbidden):
			return response.Forbidden(c, "Access denied")
		default:
			return response.InternalServerError(c, "Failed to create staff")
		}
	}

	return response.Created(c, "Staff created", fiber.Map{
		"staff": staff.ToResponse(),
	})
}

// CreateCompanyAdmin creates a company_admin account (system admin only)
// @Summary Create company admin
// @Tags Staff
// @Accept json
// @Produce json
// @Param body body services.CreateCompanyAdminInput true "New company admin"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /system-admin [post]
func (h *StaffHandler) CreateCompanyAdmin(c *fiber.Ctx) error {
	var input services.CreateCompanyAdminInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	admin, err := h.staffService.CreateCompanyAdmin(c.Context(), middleware.CallerRole(c), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoginIDTaken), errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, "Login ID or email already exists")
		case errors.Is(err, services.ErrRoleForbidden):
			return response.Forbidden(c, "Access denied")
		default:
			return response.InternalServerError(c, "Failed to create company admin")
		}
	}

	return response.Created(c, "Company Admin Created!", fiber.Map{
		"user_id": admin.ID,
	})
}

// DeleteStaff soft deletes a staff record
// @Summary Delete staff
// @Tags Staff
// @Produce json
// @Param id path int true "Staff ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /company-admin/staff/{id} [delete]
func (h *StaffHandler) DeleteStaff(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid staff ID")
	}

	company, err := h.callerCompany(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.staffService.DeleteStaff(c.Context(), middleware.CallerRole(c), company, uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrStaffNotFound):
			return response.NotFound(c, "Staff not found")
		default:
			return response.Forbidden(c, "Access denied")
		}
	}

	return response.Success(c, "Staff deleted", nil)
}

// VerifyEmail consumes a verification link token (public endpoint)
// @Summary Verify email
// @Description Consume a verification token and commit the staged password
// @Tags Staff
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /verify-email [get]
func (h *StaffHandler) VerifyEmail(c *fiber.Ctx) error {
	rawToken := c.Query("token")

	err := h.credentialService.VerifyEmail(c.Context(), rawToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenMissing):
			return response.BadRequest(c, "Token is missing")
		case errors.Is(err, services.ErrVerificationToken), errors.Is(err, services.ErrInvalidPayload):
			// Consumed, superseded, forged and expired all read the same
			return response.BadRequest(c, "Invalid or expired token")
		default:
			return response.InternalServerError(c, "Failed to verify email")
		}
	}

	return response.Success(c, "Email verified. Credentials sent.", nil)
}

// callerCompany loads the authenticated staff record's company. A
// system admin is not confined to one company and scopes to all.
func (h *StaffHandler) callerCompany(c *fiber.Ctx) (string, error) {
	if middleware.CallerRole(c) == domain.RoleSystemAdmin {
		return "", nil
	}

	caller, err := h.staffRepo.GetByID(c.Context(), middleware.CallerID(c))
	if err != nil {
		return "", err
	}
	return caller.CompanyName, nil
}

package response

import "github.com/gofiber/fiber/v2"

// Response is the envelope every endpoint answers with. Success
// responses fill Message and Data, failures fill Error; the two halves
// are never mixed, so clients branch on Success alone. The login and
// token-introspection endpoints expose this shape directly, which makes
// the field set part of the public API.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func write(c *fiber.Ctx, status int, body Response) error {
	return c.Status(status).JSON(body)
}

// Success sends a 200 with an optional message and payload
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return write(c, fiber.StatusOK, Response{Success: true, Message: message, Data: data})
}

// Created sends a 201 for a newly registered record
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return write(c, fiber.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// Error sends a failure with an explicit status. The text reaches the
// client, so callers pass user-facing wording only; internal error
// detail belongs in the server log.
func Error(c *fiber.Ctx, status int, message string) error {
	return write(c, status, Response{Success: false, Error: message})
}

// BadRequest reports a malformed or invalid request (400)
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized reports missing or failed authentication (401)
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden reports a valid session lacking the required role (403)
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound reports an absent record (404)
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict reports a uniqueness collision (409)
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalServerError reports an unexpected failure (500)
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

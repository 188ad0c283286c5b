package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, handler fiber.Handler) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestSuccessEnvelope(t *testing.T) {
	status, body := roundTrip(t, func(c *fiber.Ctx) error {
		return Success(c, "done", fiber.Map{"role": "staff_user"})
	})

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "done", body["message"])
	assert.Equal(t, "staff_user", body["data"].(map[string]interface{})["role"])
	// Failure half never leaks into a success response
	assert.NotContains(t, body, "error")
}

func TestSuccessOmitsEmptyMessageAndData(t *testing.T) {
	_, body := roundTrip(t, func(c *fiber.Ctx) error {
		return Success(c, "", nil)
	})

	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "message")
	assert.NotContains(t, body, "data")
}

func TestErrorEnvelope(t *testing.T) {
	cases := []struct {
		handler fiber.Handler
		status  int
		text    string
	}{
		{func(c *fiber.Ctx) error { return BadRequest(c, "bad input") }, http.StatusBadRequest, "bad input"},
		{func(c *fiber.Ctx) error { return Unauthorized(c, "Unauthorized") }, http.StatusUnauthorized, "Unauthorized"},
		{func(c *fiber.Ctx) error { return Forbidden(c, "Access denied") }, http.StatusForbidden, "Access denied"},
		{func(c *fiber.Ctx) error { return NotFound(c, "missing") }, http.StatusNotFound, "missing"},
		{func(c *fiber.Ctx) error { return Conflict(c, "taken") }, http.StatusConflict, "taken"},
		{func(c *fiber.Ctx) error { return InternalServerError(c, "oops") }, http.StatusInternalServerError, "oops"},
	}

	for _, tc := range cases {
		status, body := roundTrip(t, tc.handler)
		assert.Equal(t, tc.status, status)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tc.text, body["error"])
		assert.NotContains(t, body, "message")
		assert.NotContains(t, body, "data")
	}
}

func TestCreated(t *testing.T) {
	status, body := roundTrip(t, func(c *fiber.Ctx) error {
		return Created(c, "made", fiber.Map{"id": 1})
	})

	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "made", body["message"])
}

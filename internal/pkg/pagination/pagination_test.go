package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, target string) *Params {
	t.Helper()
	app := fiber.New()
	var got *Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	return got
}

func TestGetParamsClamping(t *testing.T) {
	cases := []struct {
		target string
		page   int
		limit  int
		offset int
	}{
		{"/", 1, DefaultLimit, 0},
		{"/?page=3&limit=10", 3, 10, 20},
		{"/?page=0&limit=0", 1, DefaultLimit, 0},
		{"/?page=-2&limit=-5", 1, DefaultLimit, 0},
		{"/?limit=500", 1, MaxLimit, 0},
		{"/?page=abc&limit=xyz", 1, DefaultLimit, 0},
	}

	for _, c := range cases {
		p := paramsFor(t, c.target)
		assert.Equal(t, c.page, p.Page, c.target)
		assert.Equal(t, c.limit, p.Limit, c.target)
		assert.Equal(t, c.offset, p.Offset, c.target)
	}
}

func TestMeta(t *testing.T) {
	p := &Params{Page: 2, Limit: 10, Offset: 10}
	meta := p.Meta(25)

	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(25), meta.Total)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	last := (&Params{Page: 3, Limit: 10, Offset: 20}).Meta(25)
	assert.False(t, last.HasNext)

	empty := (&Params{Page: 1, Limit: 10}).Meta(0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)

	exact := (&Params{Page: 2, Limit: 10, Offset: 10}).Meta(20)
	assert.Equal(t, 2, exact.TotalPages)
	assert.False(t, exact.HasNext)
}

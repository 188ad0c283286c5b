package pagination

import "github.com/gofiber/fiber/v2"

const (
	// DefaultLimit bounds listings that do not name a page size
	DefaultLimit = 20
	// MaxLimit caps the page size a client may request
	MaxLimit = 100
)

// Params is the page window a listing request asked for
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// GetParams reads ?page and ?limit, clamping both to sane bounds
func GetParams(c *fiber.Ctx) *Params {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	limit := c.QueryInt("limit", DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	} else if limit > MaxLimit {
		limit = MaxLimit
	}

	return &Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Meta describes where a page sits inside the filtered total, so the
// staff and matter listings can render pagers without a second count
// request.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Meta builds the page metadata for a listing of total matching rows
func (p *Params) Meta(total int64) *Meta {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))

	return &Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: pages,
		HasNext:    p.Page < pages,
		HasPrev:    p.Page > 1,
	}
}

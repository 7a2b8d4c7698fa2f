package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PaginatedResponse wraps list results with pagination metadata.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination contains offset-based pagination info.
type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

func pageLink(base string, offset, limit int, rel string) string {
	return fmt.Sprintf(`<%s?offset=%d&limit=%d>; rel=%q`, base, offset, limit, rel)
}

// SetLinkHeaders adds RFC 8288 Link headers (first/prev/next/last) for a
// paginated response, based on the current request path.
func SetLinkHeaders(c *fiber.Ctx, p Pagination) {
	base := c.Path()

	links := []string{pageLink(base, 0, p.Limit, "first")}

	if p.Offset > 0 {
		prev := p.Offset - p.Limit
		if prev < 0 {
			prev = 0
		}
		links = append(links, pageLink(base, prev, p.Limit, "prev"))
	}

	if p.Offset+p.Limit < p.Total {
		links = append(links, pageLink(base, p.Offset+p.Limit, p.Limit, "next"))
	}

	last := p.Total - p.Limit
	if last < 0 {
		last = 0
	}
	links = append(links, pageLink(base, last, p.Limit, "last"))

	c.Set("Link", strings.Join(links, ", "))
}

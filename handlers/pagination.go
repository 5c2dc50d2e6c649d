package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// pageParams parses page/limit query values and clamps them to sane bounds,
// so a zero or negative limit can never reach the page-count division.
func pageParams(c *fiber.Ctx, defaultLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit, (page - 1) * limit
}

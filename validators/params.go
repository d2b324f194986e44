package validators

import (
	"strconv"
	"strings"

	"healthtrack/middleware"

	"github.com/gofiber/fiber/v2"
)

// IDParam validates the path parameter param as a positive integer and stores it
// as uint under the same key in c.Locals. entity names it in the error message.
func IDParam(param, entity string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, entity+" ID is required")
		}

		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil || id == 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid "+entity+" ID")
		}

		c.Locals(param, uint(id))
		return c.Next()
	}
}

func invalidBody(c *fiber.Ctx) error {
	return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
}

package validators

import (
	"healthtrack/services"

	"github.com/gofiber/fiber/v2"
)

// ProgramBody parses {name, description} into c.Locals("validatedProgram").
// Field rules are enforced by the program service.
func ProgramBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(services.ProgramInput)
		if err := c.BodyParser(reqData); err != nil {
			return invalidBody(c)
		}

		c.Locals("validatedProgram", reqData)
		return c.Next()
	}
}

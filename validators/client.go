package validators

import (
	"healthtrack/services"

	"github.com/gofiber/fiber/v2"
)

// ClientBody parses a client payload into c.Locals("validatedClient"), coercing
// age from a string when needed.
func ClientBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name    string  `json:"name"`
			Age     FlexInt `json:"age"`
			Gender  string  `json:"gender"`
			Phone   string  `json:"phone"`
			Address string  `json:"address"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return invalidBody(c)
		}

		c.Locals("validatedClient", &services.ClientInput{
			Name:    reqData.Name,
			Age:     reqData.Age.Int(),
			Gender:  reqData.Gender,
			Phone:   reqData.Phone,
			Address: reqData.Address,
		})
		return c.Next()
	}
}

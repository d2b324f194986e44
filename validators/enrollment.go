package validators

import (
	"encoding/json"

	"healthtrack/services"

	"github.com/gofiber/fiber/v2"
)

// EnrollmentBody parses {clientId, programId} into c.Locals("validatedEnrollment").
func EnrollmentBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ClientID  FlexInt `json:"clientId"`
			ProgramID FlexInt `json:"programId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return invalidBody(c)
		}

		c.Locals("validatedEnrollment", &services.EnrollmentInput{
			ClientID:  reqData.ClientID.ID(),
			ProgramID: reqData.ProgramID.ID(),
		})
		return c.Next()
	}
}

// BulkEnrollmentBody parses {clientId, programIds} into
// c.Locals("validatedBulkEnrollment"). A programIds value that is not an array
// is treated as missing; array items that are not ids become 0 and are later
// dropped by the batch insert.
func BulkEnrollmentBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ClientID   FlexInt         `json:"clientId"`
			ProgramIDs json.RawMessage `json:"programIds"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return invalidBody(c)
		}

		c.Locals("validatedBulkEnrollment", &services.BulkEnrollmentInput{
			ClientID:   reqData.ClientID.ID(),
			ProgramIDs: parseIDList(reqData.ProgramIDs),
		})
		return c.Next()
	}
}

func parseIDList(raw json.RawMessage) []uint {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil || items == nil {
		return nil
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		var id FlexInt
		if err := json.Unmarshal(item, &id); err != nil {
			ids = append(ids, 0)
			continue
		}
		ids = append(ids, id.ID())
	}
	return ids
}

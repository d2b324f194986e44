package middleware

import (
	"errors"

	"healthtrack/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse writes the API error body {"error": message}.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"error": message,
	})
}

// StatusFor maps a service error kind to its HTTP status. Conflicts are
// reported as 400 like the other client errors.
func StatusFor(kind services.Kind) int {
	switch kind {
	case services.KindValidation, services.KindConflict:
		return fiber.StatusBadRequest
	case services.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func statusOf(err error) int {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		return StatusFor(svcErr.Kind)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler is the app-wide fiber error handler. Service errors keep their
// message (and count, when set); fiber errors keep their status; anything else
// is a 500 carrying the error text.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var svcErr *services.Error
		if errors.As(err, &svcErr) {
			status := StatusFor(svcErr.Kind)
			if status == fiber.StatusInternalServerError {
				log.Error("request failed",
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.Error(err))
			}
			body := fiber.Map{"error": svcErr.Error()}
			if svcErr.Count != nil {
				body["count"] = *svcErr.Count
			}
			return c.Status(status).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ErrorResponse(c, fiberErr.Code, fiberErr.Message)
		}

		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
}

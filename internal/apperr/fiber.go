package apperr

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler maps errors to the API error envelope. Typed errors keep their
// status, code and field detail; anything else is logged and flattened to a
// generic internal error so no store or stack detail leaks to clients.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			body := fiber.Map{
				"code":    apiErr.Code,
				"message": apiErr.Message,
			}
			if len(apiErr.Fields) > 0 {
				body["fields"] = apiErr.Fields
			}
			return c.Status(apiErr.Status).JSON(fiber.Map{"error": body})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiber.Map{
				"code":    CodeInternal,
				"message": fiberErr.Message,
			}})
		}

		logger.Error("unhandled error", "path", c.Path(), "error", err)
		internal := Internal()
		return c.Status(internal.Status).JSON(fiber.Map{"error": fiber.Map{
			"code":    internal.Code,
			"message": internal.Message,
		}})
	}
}

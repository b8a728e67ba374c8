package middleware

import (
	"errors"
	"fmt"

	"examprep-backend/backend/config"
	"examprep-backend/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the app-level fiber error handler. Known fiber errors keep
// their status; everything else becomes a 500 with detail suppressed outside
// development.
func ErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			switch fiberErr.Code {
			case fiber.StatusRequestEntityTooLarge:
				return utils.Error(c, fiber.StatusRequestEntityTooLarge, "Request entity too large")
			case fiber.StatusBadRequest:
				return utils.BadRequest(c, "Invalid JSON in request body")
			default:
				return utils.Error(c, fiberErr.Code, fiberErr.Message)
			}
		}

		if cfg.IsDevelopment() {
			return utils.InternalServerError(c, err.Error())
		}
		return utils.InternalServerError(c)
	}
}

// NotFoundHandler answers anything that matched no route.
func NotFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
		Success: false,
		Error:   "Endpoint not found",
		Message: fmt.Sprintf("Cannot %s %s", c.Method(), c.Path()),
	})
}

package middleware

import (
	"errors"
	"strings"

	"github.com/eskmag/greenpulse/internal/logging"
	"github.com/eskmag/greenpulse/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// ErrorHandler returns the fiber error handler for errors that escape the
// route handlers: unknown methods, oversized bodies, recovered panics.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
		}

		fields := []interface{}{
			"path", c.Path(),
			"method", c.Method(),
			"status", status,
			"error", err,
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error("Request error", fields...)
		} else {
			logger.Warn("Request error", fields...)
		}

		return c.Status(status).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    StatusCode(status),
				Message: message,
				Path:    c.Path(),
			},
		})
	}
}

// StatusCode converts an HTTP status into an error code such as
// "METHOD_NOT_ALLOWED". Unknown statuses map to "ERROR".
func StatusCode(status int) string {
	text := utils.StatusMessage(status)
	if text == "" {
		return "ERROR"
	}
	text = strings.ReplaceAll(text, "'", "")
	text = strings.ReplaceAll(text, "-", " ")
	return strings.ToUpper(strings.Join(strings.Fields(text), "_"))
}

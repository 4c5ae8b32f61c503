package server

import (
	"context"
	"errors"

	"saathi/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// requestContext bounds a handler's storage work.
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

// statusFor maps an AppError kind to its HTTP status.
func statusFor(kind string) int {
	switch kind {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeConflict:
		return fiber.StatusConflict
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case models.CodeStorageUnavailable:
		return fiber.StatusServiceUnavailable
	case models.CodeInternal:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

// respondServiceError writes the error body for a failed service call.
// Errors that carry no kind are reported as a bad request with the raw text.
func respondServiceError(c *fiber.Ctx, err error) error {
	kind := models.KindOf(err)
	if kind == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}
	return models.RespondWithError(c, statusFor(kind), err)
}

// respondWriteError is respondServiceError for write routes whose storage
// failures are reported with a route-specific status and message.
func respondWriteError(c *fiber.Ctx, err error, status int, message string) error {
	if models.IsKind(err, models.CodeStorageUnavailable) {
		return models.RespondWithError(c, status, &models.AppError{
			Code:    models.CodeStorageUnavailable,
			Message: message,
			Detail:  message,
			Err:     err,
		})
	}
	return respondServiceError(c, err)
}

// parseBody decodes the JSON request body into dst. On failure it writes a
// 400 response and returns errResponseWritten.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body").WithDetail("%s", err.Error()))
		return errResponseWritten
	}
	return nil
}

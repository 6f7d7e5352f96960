package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"caseapi/internal/apperr"
)

// responseStatus is the status the client will see. Errors returned up the chain are
// rendered later by the global error handler, so their status is derived here.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return fiber.StatusInternalServerError
}

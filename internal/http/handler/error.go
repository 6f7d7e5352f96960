package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"caseapi/internal/apperr"
	"caseapi/internal/http/middleware"
)

// errorPayload is the body of every failed response.
type errorPayload struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// writeError writes the error envelope. message must be safe to show to clients.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		Success: false,
		Error:   message,
		Code:    code,
	})
}

// writeAppError maps err onto the envelope. The wrapped cause is logged, never returned.
func writeAppError(c *fiber.Ctx, err error) error {
	ae := apperr.FromError(err)
	if ae.Err != nil || ae.Status >= fiber.StatusInternalServerError {
		log := middleware.LoggerFrom(c)
		fields := []zap.Field{
			zap.String("code", ae.Code),
			zap.Int("status", ae.Status),
			zap.Error(err),
		}
		if ae.Status >= fiber.StatusInternalServerError {
			log.Error("request_failed", fields...)
		} else {
			log.Warn("request_rejected", fields...)
		}
	}
	return writeError(c, ae.Status, ae.Code, ae.Message)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return writeAppError(c, err)
		}

		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, apperr.ErrTooLarge.Code, apperr.ErrTooLarge.Message)
		default:
			middleware.LoggerFrom(c).Error("unhandled_error", zap.Error(err))
			return writeError(c, fiber.StatusInternalServerError, apperr.ErrInternal.Code, apperr.ErrInternal.Message)
		}
	}
}

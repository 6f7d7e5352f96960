package handler

import (
	"context"
	"errors"
	"mime"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"caseapi/internal/storage"
)

// Pinger is satisfied by *sql.DB and *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthCheck handles GET /health: checks DB connectivity only.
//
// @Summary Readiness probe
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe handles GET /healthz.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ServeStorage handles GET /storage/* for files kept by the local store.
func ServeStorage(files *storage.LocalStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, info, err := files.Open(c.Params("*"))
		switch {
		case errors.Is(err, storage.ErrInvalidPath):
			return writeError(c, fiber.StatusBadRequest, "INVALID_PATH", "invalid path")
		case storage.IsNotFound(err):
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "File not found")
		case err != nil:
			return writeAppError(c, err)
		}

		ct := mime.TypeByExtension(filepath.Ext(info.Name()))
		if ct == "" {
			ct = fiber.MIMEOctetStream
		}
		c.Set(fiber.HeaderContentType, ct)
		c.Set(fiber.HeaderContentLength, strconv.FormatInt(info.Size(), 10))
		return c.SendStream(f, int(info.Size()))
	}
}

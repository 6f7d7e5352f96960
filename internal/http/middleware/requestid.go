package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id in both directions.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey holds the request id in Fiber's context locals.
	RequestIDLocalKey = "request_id"

	maxRequestIDLen = 128
)

// RequestID accepts a caller-supplied X-Request-ID when it is short printable ASCII,
// otherwise generates a UUID. The id is echoed on the response.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if acceptableRequestID(id) {
			id = utils.CopyString(id)
		} else {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}

// RequestIDFrom returns the id stored by RequestID, or "" outside it.
func RequestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDLocalKey).(string)
	return id
}

func acceptableRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

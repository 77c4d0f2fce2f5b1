package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimit creates a per-caller rate limiter middleware instance. Requests
// are keyed by the authenticated subject when present, falling back to the
// client IP.
func RateLimit(identifier string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Second
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			caller := c.IP()
			if claims, ok := GetAuthClaims(c); ok && claims.Subject != "" {
				caller = claims.Subject
			}
			return fmt.Sprintf("%s:%s", identifier, caller)
		},
	})
}

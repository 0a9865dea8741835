package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sauravsingh6568/paonflowers-sub000/internal/apperr"
	"github.com/sauravsingh6568/paonflowers-sub000/internal/ratelimit"
)

// SendOTPRateLimit caps code-issuance requests per phone number, falling back
// to the client IP when the body carries no phone. Limiter errors fail open:
// losing rate limiting briefly beats rejecting every login.
func SendOTPRateLimit(limiter ratelimit.Limiter, window time.Duration, max int) fiber.Handler {
	if max <= 0 {
		max = 5
	}
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}
		var req struct {
			Phone string `json:"phone"`
		}
		_ = c.BodyParser(&req)
		key := strings.TrimSpace(req.Phone)
		if key == "" {
			key = c.IP()
		}
		allowed, err := limiter.Allow(c.UserContext(), "rl:otp:"+key, window, max)
		if err != nil {
			return c.Next()
		}
		if !allowed {
			return apperr.RateLimited()
		}
		return c.Next()
	}
}

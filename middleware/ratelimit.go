package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nabhacare/telemed/redis"
)

const (
	authLimitWindow = 15 * time.Minute
	authLimitMax    = 20
)

// AuthRateLimit applies a fixed-window limit per client IP and route,
// backed by Redis. Applied to the sign-in and admin-login routes only.
func AuthRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if redis.Client == nil {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.Path(), c.IP())

		count, err := redis.Client.Incr(redis.Ctx, key).Result()
		if err != nil {
			// Limiter failure must not take down logins.
			log.Printf("rate limiter error: %v", err)
			return c.Next()
		}
		if count == 1 {
			redis.Client.Expire(redis.Ctx, key, authLimitWindow)
		}

		if count > authLimitMax {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many login attempts. Please try again later.",
			})
		}

		return c.Next()
	}
}

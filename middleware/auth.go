package middleware

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

func jwtSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "fallback_secret"
	}
	return secret
}

// Protected verifies the bearer token and stores the claims the rest of
// the request pipeline relies on. The status and category claims are a
// snapshot taken at token issue time and are not re-checked against the
// database here.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(jwtSecret()),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			userToken := c.Locals("user")
			token, ok := userToken.(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Invalid token",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Invalid token claims",
				})
			}

			role, err := extractString(claims, "role")
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Invalid role in token",
				})
			}
			c.Locals("role", role)

			// Admin tokens carry no user id.
			if userID, err := extractUserID(claims); err == nil {
				c.Locals("userID", userID)
			}
			if status, err := extractString(claims, "status"); err == nil {
				c.Locals("status", status)
			}
			if category, err := extractString(claims, "category"); err == nil {
				c.Locals("category", category)
			}

			return c.Next()
		},
	})
}

// RequireRole rejects requests whose token was not issued for the given role.
func RequireRole(roleName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != roleName {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Unauthorized access",
			})
		}
		return c.Next()
	}
}

// extractUserID handles multiple potential formats of user ID in token
func extractUserID(claims jwt.MapClaims) (uint, error) {
	idVal := claims["id"]
	if idVal == nil {
		return 0, fmt.Errorf("no ID found in claims")
	}

	switch v := idVal.(type) {
	case float64:
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse ID string: %v", err)
		}
		return uint(parsed), nil
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported ID type: %T", v)
	}
}

func extractString(claims jwt.MapClaims, key string) (string, error) {
	val := claims[key]
	if val == nil {
		return "", fmt.Errorf("no %s found in claims", key)
	}
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("unsupported %s type: %T", key, val)
	}
	return s, nil
}

// jwtError handles JWT errors
func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Session expired. Please sign in again.",
	})
}

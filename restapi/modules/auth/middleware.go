package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RequireAuth middleware validates the JWT from the cookie or bearer header
// and blocks guests
func RequireAuth(c *fiber.Ctx) error {
	token := tokenFromRequest(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHENTICATED",
			"message": "Authentication required",
		})
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHENTICATED",
			"message": "Invalid or expired session",
		})
	}

	// Store caller identity in context. ValidateJWT has already trimmed it
	// the same way member lists are trimmed.
	c.Locals("is_authenticated", true)
	c.Locals("identity", claims.Subject)

	return c.Next()
}

// OptionalAuth identifies the caller if a token is present but does not block guests.
func OptionalAuth(c *fiber.Ctx) error {
	token := tokenFromRequest(c)
	if token == "" {
		c.Locals("is_authenticated", false)
		return c.Next()
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		// Treat invalid/expired tokens as guest access
		c.Locals("is_authenticated", false)
		return c.Next()
	}

	c.Locals("is_authenticated", true)
	c.Locals("identity", claims.Subject)

	return c.Next()
}

// Identity returns the caller identity set by the middleware, if any.
func Identity(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals("identity").(string)
	return id, ok && id != ""
}

package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logout clears the session cookie
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    "",
			Expires:  time.Now().Add(-1 * time.Hour),
			MaxAge:   -1,
			HTTPOnly: true,
			Secure:   false,
			SameSite: "Lax",
			Path:     "/",
		})
		return c.JSON(fiber.Map{"message": "Logged out successfully"})
	}
}

// Me returns the identity of the current session
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := Identity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "code": "UNAUTHENTICATED", "message": "Not authenticated"})
		}
		return c.JSON(IdentityResponse{Identity: identity})
	}
}

// RefreshToken issues a fresh token for a valid session
func RefreshToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		oldToken := tokenFromRequest(c)
		if oldToken == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "code": "UNAUTHENTICATED", "message": "No token to refresh"})
		}

		newToken, err := RefreshJWT(oldToken)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "code": "UNAUTHENTICATED", "message": "Invalid or expired token"})
		}

		SetAuthCookie(c, newToken)
		return c.JSON(fiber.Map{"message": "Token refreshed successfully"})
	}
}

// SetAuthCookie stores token in the session cookie
func SetAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   int(GetJWTExpirationTime().Seconds()),
		Path:     "/",
	})
}

// Package auth provides authentication utilities.
//
//revive:disable-next-line:var-naming
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ortelius/governance-backend/util"
)

// CookieName is the cookie holding the session token.
const CookieName = "auth_token"

// JWT secret key - replaced at startup from JWT_SECRET
var jwtSecret = []byte("your-secret-key-change-this-in-production")

var jwtTTL = 24 * time.Hour

// ============================================================================
// JWT TOKEN MANAGEMENT
// ============================================================================

// Claims represents JWT claims. The subject is the caller identity used by
// every governance call.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateJWT generates a JWT token for an identity
func GenerateJWT(identity string) (string, error) {
	if strings.TrimSpace(identity) == "" {
		return "", fmt.Errorf("identity is required")
	}
	now := time.Now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "governance-backend",
			Subject:   identity,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateJWT validates a JWT token and returns the claims
func ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims.Subject = util.NormalizeIdentity(claims.Subject)
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}

// RefreshJWT generates a new token with extended expiration for an existing valid token
func RefreshJWT(oldTokenString string) (string, error) {
	claims, err := ValidateJWT(oldTokenString)
	if err != nil {
		return "", fmt.Errorf("cannot refresh invalid token: %w", err)
	}
	return GenerateJWT(claims.Subject)
}

// tokenFromRequest reads the session cookie, falling back to a bearer token.
func tokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(CookieName); token != "" {
		return token
	}
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// ============================================================================
// CONFIGURATION
// ============================================================================

// Configure sets the JWT secret and lifetime (call this on startup)
func Configure(secret string, ttl time.Duration) {
	if secret == "" {
		panic("JWT secret cannot be empty")
	}
	jwtSecret = []byte(secret)
	if ttl > 0 {
		jwtTTL = ttl
	}
}

// GetJWTExpirationTime returns the configured JWT expiration duration
func GetJWTExpirationTime() time.Duration {
	return jwtTTL
}

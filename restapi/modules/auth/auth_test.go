package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	Configure("test-secret", time.Hour)
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("alice")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "governance-backend", claims.Issuer)

	refreshed, err := RefreshJWT(token)
	require.NoError(t, err)
	claims, err = ValidateJWT(refreshed)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)

	_, err = GenerateJWT("  ")
	assert.Error(t, err)
}

func TestValidateJWTRejects(t *testing.T) {
	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}})
	signed, err := expired.SignedString(jwtSecret)
	require.NoError(t, err)
	_, err = ValidateJWT(signed)
	assert.Error(t, err)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}})
	signed, err = foreign.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = ValidateJWT(signed)
	assert.Error(t, err)

	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{})
	signed, err = anonymous.SignedString(jwtSecret)
	require.NoError(t, err)
	_, err = ValidateJWT(signed)
	assert.ErrorContains(t, err, "no subject")
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/private", RequireAuth, Me())
	app.Get("/public", OptionalAuth, func(c *fiber.Ctx) error {
		id, _ := Identity(c)
		return c.SendString(id)
	})
	app.Post("/refresh", RefreshToken())
	app.Post("/logout", Logout())
	return app
}

func TestRequireAuth(t *testing.T) {
	app := newApp()
	token, err := GenerateJWT("alice")
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var me IdentityResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "alice", me.Identity)

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOptionalAuth(t *testing.T) {
	app := newApp()
	token, err := GenerateJWT("bob")
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/public", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, string(body))

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "bob", string(body))
}

func TestRefreshAndLogout(t *testing.T) {
	app := newApp()
	token, err := GenerateJWT("carol")
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Set-Cookie"), CookieName+"=")
	assert.Contains(t, strings.ToLower(resp.Header.Get("Set-Cookie")), "max-age=3600")

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Set-Cookie"), CookieName+"=;")
}

func TestPaddedSubjectIsTrimmed(t *testing.T) {
	app := newApp()
	token, err := GenerateJWT("  dave ")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "dave", claims.Subject)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	var me IdentityResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "dave", me.Identity)

	blank := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "   "}})
	signed, err := blank.SignedString(jwtSecret)
	require.NoError(t, err)
	_, err = ValidateJWT(signed)
	assert.ErrorContains(t, err, "no subject")
}

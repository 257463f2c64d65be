package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func doRequest(authz string) *httptest.ResponseRecorder {
	e := echo.New()
	cfg := config.Config{JWTSecret: testSecret}

	handler := middleware.AuthJWT(cfg)(func(c echo.Context) error {
		uid := c.Get(middleware.CtxUserIDKey).(int64)
		role := c.Get(middleware.CtxUserRoleKey).(string)
		return c.JSON(http.StatusOK, map[string]interface{}{"user_id": uid, "role": role})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()

	_ = handler(e.NewContext(req, rec))
	return rec
}

func TestAuthJWT_ValidToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":  "42",
		"role": "USER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	rec := doRequest("Bearer " + token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":42`)
	assert.Contains(t, rec.Body.String(), `"role":"USER"`)
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec := doRequest("")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongScheme(t *testing.T) {
	rec := doRequest("Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":  "42",
		"role": "USER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}, "other-secret")

	rec := doRequest("Bearer " + token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":  "42",
		"role": "USER",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}, testSecret)

	rec := doRequest("Bearer " + token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MissingRole(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	rec := doRequest("Bearer " + token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoleGuard(t *testing.T) {
	e := echo.New()

	handler := middleware.AdminRoleGuard()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// ADMIN
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserRoleKey, "ADMIN")
	_ = handler(c)
	assert.Equal(t, http.StatusOK, rec.Code)

	// USER
	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set(middleware.CtxUserRoleKey, "USER")
	_ = handler(c)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// roleなし
	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = handler(c)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

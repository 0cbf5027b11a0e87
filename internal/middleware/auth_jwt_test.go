package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookstore/internal/config"
	"bookstore/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, sub string, role string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, middleware.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

// AuthJWT → (任意のmw) → contextの中身をJSONで返す
func newProtected(mws ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	all := append([]echo.MiddlewareFunc{middleware.AuthJWT(config.Config{JWTSecret: testSecret})}, mws...)
	e.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"user_id": c.Get(middleware.CtxUserIDKey),
			"role":    c.Get(middleware.CtxUserRoleKey),
		})
	}, all...)
	return e
}

func doGet(e *echo.Echo, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWT_Valid(t *testing.T) {
	e := newProtected()
	tok := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "42", "USER", time.Now().Add(time.Minute))

	rec := doGet(e, tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":42,"role":"USER"}`, rec.Body.String())
}

func TestAuthJWT_Rejects(t *testing.T) {
	e := newProtected()
	future := time.Now().Add(time.Minute)

	cases := map[string]string{
		"missing":      "",
		"garbage":      "not-a-token",
		"wrong secret": signToken(t, jwt.SigningMethodHS256, []byte("other"), "42", "USER", future),
		"expired":      signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "42", "USER", time.Now().Add(-time.Minute)),
		"bad subject":  signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "abc", "USER", future),
		"no role":      signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "42", "", future),
		"wrong alg":    signToken(t, jwt.SigningMethodHS512, []byte(testSecret), "42", "USER", future),
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doGet(e, tok)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
		})
	}
}

func TestAdminOnly(t *testing.T) {
	e := newProtected(middleware.AdminOnly())
	future := time.Now().Add(time.Minute)

	rec := doGet(e, signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "1", "ADMIN", future))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doGet(e, signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "2", "USER", future))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func runWithAuth(t *testing.T, authorization string, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := JWTAuth(testSecret)(handler)(c)
	require.NoError(t, err)
	return rec
}

func TestJWTAuthValidToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":     float64(42),
		"student": true,
		"tutor":   false,
		"staff":   false,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	var got Identity
	rec := runWithAuth(t, "Bearer "+token, func(c echo.Context) error {
		got = CurrentIdentity(c)
		return c.NoContent(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), got.UserID)
	assert.True(t, got.IsStudent)
	assert.False(t, got.IsTutor)
	assert.False(t, got.IsStaff)
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec := runWithAuth(t, "", func(c echo.Context) error {
		t.Fatal("handler must not be called")
		return nil
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": float64(1),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	rec := runWithAuth(t, "Bearer "+token, func(c echo.Context) error {
		t.Fatal("handler must not be called")
		return nil
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": float64(1),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	rec := runWithAuth(t, "Bearer "+token, func(c echo.Context) error {
		t.Fatal("handler must not be called")
		return nil
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireStudent(t *testing.T) {
	e := echo.New()

	call := func(identity Identity) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(identityKey, identity)

		err := RequireStudent(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})(c)
		require.NoError(t, err)
		return rec
	}

	assert.Equal(t, http.StatusOK, call(Identity{UserID: 1, IsStudent: true}).Code)
	assert.Equal(t, http.StatusForbidden, call(Identity{UserID: 2, IsTutor: true}).Code)
}

func TestRequireStaff(t *testing.T) {
	e := echo.New()

	call := func(identity Identity) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(identityKey, identity)

		err := RequireStaff(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})(c)
		require.NoError(t, err)
		return rec
	}

	assert.Equal(t, http.StatusOK, call(Identity{UserID: 1, IsStaff: true}).Code)
	assert.Equal(t, http.StatusForbidden, call(Identity{UserID: 2, IsStudent: true}).Code)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"papertrade/configs"
)

func newTestTokenManager() *TokenManager {
	return NewTokenManager(&configs.AuthConfig{
		JWTSecret:          "test-secret",
		AccessTokenMinutes: 15,
		RefreshTokenDays:   14,
	})
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := newTestTokenManager()
	userID := uuid.New()

	token, err := tm.GenerateAccessToken(userID)
	require.NoError(t, err)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tm := newTestTokenManager()
	other := NewTokenManager(&configs.AuthConfig{
		JWTSecret:          "different-secret",
		AccessTokenMinutes: 15,
		RefreshTokenDays:   14,
	})

	token, err := tm.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	tm := newTestTokenManager()
	userID := uuid.New()

	next := func(c echo.Context) error {
		got, err := GetUserID(c)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
		return c.NoContent(http.StatusOK)
	}

	invoke := func(authHeader string) *httptest.ResponseRecorder {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := tm.Authenticate(next)(c)
		if err != nil {
			e.HTTPErrorHandler(err, c)
		}
		return rec
	}

	t.Run("ValidAccessToken", func(t *testing.T) {
		token, err := tm.GenerateAccessToken(userID)
		require.NoError(t, err)

		rec := invoke("Bearer " + token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		rec := invoke("")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		rec := invoke("Token abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("RefreshTokenRejected", func(t *testing.T) {
		token, err := tm.GenerateRefreshToken(userID)
		require.NoError(t, err)

		rec := invoke("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		rec := invoke("Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

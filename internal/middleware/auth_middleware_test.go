package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wayfinder/business/quota"
	"wayfinder/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedIdentity struct {
	userID  string
	role    string
	premium bool
}

func captureHandler(out *capturedIdentity) echo.HandlerFunc {
	return func(c echo.Context) error {
		out.userID, _ = c.Get("user_id").(string)
		out.role, _ = c.Get("role").(string)
		out.premium = quota.ClaimsEntitlement{}.IsPremium(c.Request().Context(), out.userID)
		return c.NoContent(http.StatusOK)
	}
}

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, handler echo.HandlerFunc, token string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw(handler)(c))
	return rec
}

func issueToken(t *testing.T, userID, role string, ttl time.Duration) string {
	t.Helper()

	utils.InitJWT("test-secret")
	token, err := utils.GenerateJWT(userID, role, ttl)
	require.NoError(t, err)
	return token
}

func TestOptionalAuth_AnonymousPasses(t *testing.T) {
	var got capturedIdentity
	rec := runMiddleware(t, OptionalAuth(), captureHandler(&got), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, got.userID)
	assert.False(t, got.premium)
}

func TestOptionalAuth_ValidToken(t *testing.T) {
	token := issueToken(t, "u1", "USER", time.Hour)

	var got capturedIdentity
	rec := runMiddleware(t, OptionalAuth(), captureHandler(&got), token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", got.userID)
	assert.Equal(t, "USER", got.role)
	assert.False(t, got.premium)
}

// claim casing must not matter: a lowercase role still grants entitlement and
// every handler downstream sees the canonical form
func TestOptionalAuth_RoleCanonicalized(t *testing.T) {
	token := issueToken(t, "u1", "premium", time.Hour)

	var got capturedIdentity
	rec := runMiddleware(t, OptionalAuth(), captureHandler(&got), token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PREMIUM", got.role)
	assert.True(t, got.premium)
}

func TestOptionalAuth_AdminIsPremium(t *testing.T) {
	token := issueToken(t, "u1", "Admin", time.Hour)

	var got capturedIdentity
	runMiddleware(t, OptionalAuth(), captureHandler(&got), token)

	assert.Equal(t, "ADMIN", got.role)
	assert.True(t, got.premium)
}

func TestOptionalAuth_InvalidTokenRejected(t *testing.T) {
	utils.InitJWT("test-secret")

	var got capturedIdentity
	rec := runMiddleware(t, OptionalAuth(), captureHandler(&got), "not-a-jwt")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, got.userID)
}

func TestOptionalAuth_ExpiredTokenRejected(t *testing.T) {
	token := issueToken(t, "u1", "USER", -time.Hour)

	var got capturedIdentity
	rec := runMiddleware(t, OptionalAuth(), captureHandler(&got), token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_MissingHeaderRejected(t *testing.T) {
	var got capturedIdentity
	rec := runMiddleware(t, RequireAuth(), captureHandler(&got), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, got.userID)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	token := issueToken(t, "u2", "USER", time.Hour)

	var got capturedIdentity
	rec := runMiddleware(t, RequireAuth(), captureHandler(&got), token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u2", got.userID)
}

func TestAdminOnly(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	run := func(role any) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		require.NoError(t, AdminOnly()(handler)(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run("ADMIN").Code)
	assert.Equal(t, http.StatusForbidden, run("PREMIUM").Code)
	assert.Equal(t, http.StatusForbidden, run(nil).Code)
}

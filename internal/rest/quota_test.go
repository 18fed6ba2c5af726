package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuotaService struct {
	remaining  int
	resetUser  string
	resetValue int
	resetErr   error
}

func (s *stubQuotaService) Remaining(ctx context.Context, userID string) int { return s.remaining }

func (s *stubQuotaService) Reset(ctx context.Context, userID string, credits int) error {
	s.resetUser = userID
	s.resetValue = credits
	return s.resetErr
}

func (s *stubQuotaService) DefaultFreeQuota() int { return 10 }

func performQuotaGet(t *testing.T, handler *QuotaHandler, userID, role string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quota", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	c.Set("role", role)

	require.NoError(t, handler.Get(c))
	return rec
}

func TestQuotaHandler_MeteredUser(t *testing.T) {
	handler := NewQuotaHandler(&stubQuotaService{remaining: 7})

	rec := performQuotaGet(t, handler, "u1", "USER")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Body.String(), `"remaining_credits":7`)
	assert.Contains(t, rec.Body.String(), `"daily_allotment":10`)
	assert.Contains(t, rec.Body.String(), `"unlimited":false`)
}

func TestQuotaHandler_PremiumUnlimited(t *testing.T) {
	handler := NewQuotaHandler(&stubQuotaService{remaining: 0})

	for _, role := range []string{"PREMIUM", "ADMIN"} {
		rec := performQuotaGet(t, handler, "u1", role)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"unlimited":true`, "role %s", role)
	}
}

func TestQuotaHandler_GetRequiresIdentity(t *testing.T) {
	handler := NewQuotaHandler(&stubQuotaService{})

	rec := performQuotaGet(t, handler, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestQuotaHandler_Reset(t *testing.T) {
	stub := &stubQuotaService{}
	handler := NewQuotaHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"credits":10}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("u7")

	require.NoError(t, handler.Reset(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u7", stub.resetUser)
	assert.Equal(t, 10, stub.resetValue)
}

func TestQuotaHandler_ResetRejectsNegative(t *testing.T) {
	stub := &stubQuotaService{}
	handler := NewQuotaHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"credits":-5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("u7")

	require.NoError(t, handler.Reset(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
	assert.Equal(t, "", stub.resetUser)
}
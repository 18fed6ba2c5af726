package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wayfinder/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProfileWriter struct {
	saved domain.TasteProfile
	err   error
	calls int
}

func (s *stubProfileWriter) UpsertTasteProfile(ctx context.Context, profile domain.TasteProfile) error {
	s.calls++
	s.saved = profile
	return s.err
}

func performProfileRequest(t *testing.T, handler *ProfileHandler, body, userID string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile/taste", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)

	require.NoError(t, handler.UpsertTaste(c))
	return rec
}

func TestProfileHandler_UpsertTaste(t *testing.T) {
	stub := &stubProfileWriter{}
	handler := NewProfileHandler(stub)

	body := `{"food":0.9,"culture":0.4,"nightlife":0.2,"outdoors":0.7,"shopping":0.1,"wellness":0.3,"novelty_tolerance":0.6}`
	rec := performProfileRequest(t, handler, body, "u1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.calls)

	// identity comes from the auth context, never from the body
	assert.Equal(t, "u1", stub.saved.UserID)
	assert.Equal(t, 0.9, stub.saved.Food)
	assert.Equal(t, 0.6, stub.saved.NoveltyTolerance)
}

func TestProfileHandler_RejectsAnonymous(t *testing.T) {
	stub := &stubProfileWriter{}
	handler := NewProfileHandler(stub)

	rec := performProfileRequest(t, handler, `{"food":0.5}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, stub.calls)
}

func TestProfileHandler_WeightsOutOfRange(t *testing.T) {
	stub := &stubProfileWriter{}
	handler := NewProfileHandler(stub)

	rec := performProfileRequest(t, handler, `{"food":1.5,"novelty_tolerance":-0.2}`, "u1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
	assert.Contains(t, rec.Body.String(), "food")
	assert.Contains(t, rec.Body.String(), "novelty_tolerance")
	assert.Zero(t, stub.calls)
}

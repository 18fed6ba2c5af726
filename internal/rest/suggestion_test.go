package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wayfinder/business/suggestion"
	"wayfinder/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSuggestionService struct {
	result  *domain.SuggestionResult
	err     error
	lastReq domain.SuggestionRequest
}

func (s *stubSuggestionService) CreateSuggestions(ctx context.Context, req domain.SuggestionRequest) (*domain.SuggestionResult, error) {
	s.lastReq = req
	return s.result, s.err
}

func performRequest(t *testing.T, handler *SuggestionHandler, body string, setup func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/suggestions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}

	require.NoError(t, handler.Create(c))
	return rec
}

const validBody = `{"intent":"QUICK","latitude":52.52,"longitude":13.405,"radius_meters":2000}`

func TestSuggestionHandler_Success(t *testing.T) {
	stub := &stubSuggestionService{result: &domain.SuggestionResult{TotalCount: 0}}
	handler := NewSuggestionHandler(stub, false)

	rec := performRequest(t, handler, validBody, func(c echo.Context) {
		c.Set("user_id", "u1")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", stub.lastReq.UserID)
	assert.Equal(t, domain.IntentQuick, stub.lastReq.Intent)
}

func TestSuggestionHandler_AnonymousAllowed(t *testing.T) {
	stub := &stubSuggestionService{result: &domain.SuggestionResult{}}
	handler := NewSuggestionHandler(stub, false)

	rec := performRequest(t, handler, validBody, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, stub.lastReq.UserID)
}

// Out-of-range fields must reach the intent policy so all violations come
// back together in the structured envelope, never as a lone tag message.
func TestSuggestionHandler_RangeViolationsReachPolicy(t *testing.T) {
	stub := &stubSuggestionService{err: &suggestion.ValidationError{
		Violations: []suggestion.FieldViolation{
			{Field: "latitude", Message: "must be in [-90, 90], got 95"},
			{Field: "radius_meters", Message: "must be in [100, 50000], got 10"},
		},
	}}
	handler := NewSuggestionHandler(stub, false)

	body := `{"intent":"QUICK","latitude":95,"longitude":13.405,"radius_meters":10}`
	rec := performRequest(t, handler, body, nil)

	// the handler forwarded the raw values instead of rejecting them itself
	assert.Equal(t, 95.0, stub.lastReq.Latitude)
	assert.Equal(t, 10, stub.lastReq.RadiusMeters)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
	assert.Contains(t, rec.Body.String(), "latitude")
	assert.Contains(t, rec.Body.String(), "radius_meters")
}

func TestSuggestionHandler_MissingFieldsUseStructuredEnvelope(t *testing.T) {
	stub := &stubSuggestionService{result: &domain.SuggestionResult{}}
	handler := NewSuggestionHandler(stub, false)

	rec := performRequest(t, handler, `{"latitude":52.52,"longitude":13.405}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_FAILED", body["code"])

	details, ok := body["details"].([]any)
	require.True(t, ok)
	fields := make([]string, 0, len(details))
	for _, d := range details {
		entry, ok := d.(map[string]any)
		require.True(t, ok)
		fields = append(fields, entry["field"].(string))
	}
	assert.ElementsMatch(t, []string{"intent", "radius_meters"}, fields)
}

func TestSuggestionHandler_MalformedBody(t *testing.T) {
	handler := NewSuggestionHandler(&stubSuggestionService{}, false)

	rec := performRequest(t, handler, `{"intent":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggestionHandler_ValidationError(t *testing.T) {
	stub := &stubSuggestionService{err: &suggestion.ValidationError{
		Violations: []suggestion.FieldViolation{
			{Field: "radius_meters", Message: "must be in [100, 50000], got 10"},
		},
	}}
	handler := NewSuggestionHandler(stub, false)

	rec := performRequest(t, handler, validBody, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_FAILED", body["code"])
	assert.NotEmpty(t, body["details"])
}

func TestSuggestionHandler_QuotaExhausted(t *testing.T) {
	stub := &stubSuggestionService{err: suggestion.ErrQuotaExceeded}
	handler := NewSuggestionHandler(stub, false)

	rec := performRequest(t, handler, validBody, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "QUOTA_EXHAUSTED")
}

func TestSuggestionHandler_CollaboratorFailure(t *testing.T) {
	stub := &stubSuggestionService{err: &suggestion.CollaboratorError{
		Collaborator: "place_search",
		Err:          errors.New("timeout"),
	}}
	handler := NewSuggestionHandler(stub, false)

	rec := performRequest(t, handler, validBody, nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "place_search")
}

func TestSuggestionHandler_UnknownError(t *testing.T) {
	stub := &stubSuggestionService{err: errors.New("boom")}
	handler := NewSuggestionHandler(stub, false)

	rec := performRequest(t, handler, validBody, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSuggestionHandler_DebugGatedByConfig(t *testing.T) {
	stub := &stubSuggestionService{result: &domain.SuggestionResult{}}

	// debug disabled in config: query param is ignored
	handler := NewSuggestionHandler(stub, false)
	performRequest(t, handler, validBody, func(c echo.Context) {
		c.QueryParams().Set("debug", "true")
	})
	assert.False(t, stub.lastReq.Debug)

	// debug enabled in config and requested
	handler = NewSuggestionHandler(stub, true)
	performRequest(t, handler, validBody, func(c echo.Context) {
		c.QueryParams().Set("debug", "true")
	})
	assert.True(t, stub.lastReq.Debug)

	// debug enabled in config but not requested
	performRequest(t, handler, validBody, nil)
	assert.False(t, stub.lastReq.Debug)
}

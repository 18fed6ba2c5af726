package rest

import (
	"context"
	"net/http"
	"time"

	"wayfinder/domain"
	"wayfinder/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	SuggestionHandler struct {
		validate          *validator.Validate
		suggestionService SuggestionService
		debugEnabled      bool
	}

	SuggestionService interface {
		CreateSuggestions(ctx context.Context, req domain.SuggestionRequest) (*domain.SuggestionResult, error)
	}

	// Range and list-cap checks live in the intent policy, which collects
	// every violation into one structured response; tags here only catch
	// fields that are missing outright.
	CreateSuggestionsRequest struct {
		Intent                string   `json:"intent" validate:"required"`
		Latitude              float64  `json:"latitude"`
		Longitude             float64  `json:"longitude"`
		RadiusMeters          int      `json:"radius_meters" validate:"required"`
		WalkingDistanceMeters *int     `json:"walking_distance_meters"`
		BudgetLevel           string   `json:"budget_level"`
		IncludeCategories     []string `json:"include_categories"`
		ExcludeCategories     []string `json:"exclude_categories"`
		DietaryRestrictions   []string `json:"dietary_restrictions"`
		FreeText              string   `json:"free_text"`
	}
)

func NewSuggestionHandler(svc SuggestionService, debugEnabled bool) *SuggestionHandler {
	return &SuggestionHandler{
		validate:          newRequestValidator(),
		suggestionService: svc,
		debugEnabled:      debugEnabled,
	}
}

// POST /api/v1/suggestions
func (h *SuggestionHandler) Create(c echo.Context) error {
	start := time.Now()
	metrics.SuggestionRequests.Inc()
	defer func() {
		metrics.SuggestionRequestLatency.Observe(time.Since(start).Seconds())
	}()

	var req CreateSuggestionsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	// identity comes from the auth context, never from the body
	userID, _ := c.Get("user_id").(string)

	domainReq := domain.SuggestionRequest{
		Intent:                domain.SuggestionIntent(req.Intent),
		Latitude:              req.Latitude,
		Longitude:             req.Longitude,
		RadiusMeters:          req.RadiusMeters,
		WalkingDistanceMeters: req.WalkingDistanceMeters,
		IncludeCategories:     req.IncludeCategories,
		ExcludeCategories:     req.ExcludeCategories,
		DietaryRestrictions:   req.DietaryRestrictions,
		FreeText:              req.FreeText,
		Debug:                 h.debugEnabled && c.QueryParam("debug") == "true",
		UserID:                userID,
	}
	if req.BudgetLevel != "" {
		level := domain.BudgetLevel(req.BudgetLevel)
		domainReq.BudgetLevel = &level
	}

	result, err := h.suggestionService.CreateSuggestions(c.Request().Context(), domainReq)
	if err != nil {
		return suggestionError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

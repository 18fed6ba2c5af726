package rest

import (
	"context"
	"net/http"

	jsonres "wayfinder/pkg/response"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	QuotaHandler struct {
		validate     *validator.Validate
		quotaService QuotaService
	}

	QuotaService interface {
		Remaining(ctx context.Context, userID string) int
		Reset(ctx context.Context, userID string, credits int) error
		DefaultFreeQuota() int
	}

	QuotaView struct {
		UserID           string `json:"user_id"`
		RemainingCredits int    `json:"remaining_credits"`
		DailyAllotment   int    `json:"daily_allotment"`
		Unlimited        bool   `json:"unlimited"`
	}

	ResetQuotaRequest struct {
		Credits int `json:"credits" validate:"min=0"`
	}
)

func NewQuotaHandler(svc QuotaService) *QuotaHandler {
	return &QuotaHandler{
		validate:     newRequestValidator(),
		quotaService: svc,
	}
}

// GET /api/v1/quota
func (h *QuotaHandler) Get(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "authentication required"})
	}

	role, _ := c.Get("role").(string)
	view := QuotaView{
		UserID:         userID,
		DailyAllotment: h.quotaService.DefaultFreeQuota(),
	}
	if role == "PREMIUM" || role == "ADMIN" {
		view.Unlimited = true
	} else {
		view.RemainingCredits = h.quotaService.Remaining(c.Request().Context(), userID)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(view))
}

// PUT /api/v1/admin/quota/:id
func (h *QuotaHandler) Reset(c echo.Context) error {
	targetID := c.Param("id")
	if targetID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "user id is required"})
	}

	var req ResetQuotaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.quotaService.Reset(c.Request().Context(), targetID, req.Credits); err != nil {
		return c.JSON(http.StatusInternalServerError, jsonres.Error(
			"QUOTA_RESET_FAILED", "Failed to reset quota", nil,
		))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(QuotaView{
		UserID:           targetID,
		RemainingCredits: req.Credits,
		DailyAllotment:   h.quotaService.DefaultFreeQuota(),
	}))
}

package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ExclusionHandler struct {
		validate   *validator.Validate
		exclusions ExclusionWriter
	}

	ExclusionWriter interface {
		AddExclusion(ctx context.Context, userID, placeID string, expiresAt *time.Time) error
	}

	// AddExclusionRequest blocks a place for the caller. Without
	// expires_in_hours the block is permanent.
	AddExclusionRequest struct {
		PlaceID        string `json:"place_id" validate:"required"`
		ExpiresInHours *int   `json:"expires_in_hours" validate:"omitempty,min=1,max=720"`
	}
)

func NewExclusionHandler(exclusions ExclusionWriter) *ExclusionHandler {
	return &ExclusionHandler{
		validate:   newRequestValidator(),
		exclusions: exclusions,
	}
}

// POST /api/v1/exclusions
func (h *ExclusionHandler) Add(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "authentication required"})
	}

	var req AddExclusionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	var expiresAt *time.Time
	if req.ExpiresInHours != nil {
		t := time.Now().Add(time.Duration(*req.ExpiresInHours) * time.Hour)
		expiresAt = &t
	}

	if err := h.exclusions.AddExclusion(c.Request().Context(), userID, req.PlaceID, expiresAt); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to save exclusion"})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(req))
}

package rest

import (
	"context"
	"net/http"

	"wayfinder/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ProfileHandler struct {
		validate     *validator.Validate
		profileStore ProfileWriter
	}

	// ProfileWriter persists the explicit taste profile set at the quiz
	// boundary. Implicit profiles are learned offline and are read-only here.
	ProfileWriter interface {
		UpsertTasteProfile(ctx context.Context, profile domain.TasteProfile) error
	}

	UpsertTasteProfileRequest struct {
		Food             float64 `json:"food" validate:"min=0,max=1"`
		Culture          float64 `json:"culture" validate:"min=0,max=1"`
		Nightlife        float64 `json:"nightlife" validate:"min=0,max=1"`
		Outdoors         float64 `json:"outdoors" validate:"min=0,max=1"`
		Shopping         float64 `json:"shopping" validate:"min=0,max=1"`
		Wellness         float64 `json:"wellness" validate:"min=0,max=1"`
		NoveltyTolerance float64 `json:"novelty_tolerance" validate:"min=0,max=1"`
	}
)

func NewProfileHandler(store ProfileWriter) *ProfileHandler {
	return &ProfileHandler{
		validate:     newRequestValidator(),
		profileStore: store,
	}
}

// PUT /api/v1/profile/taste
func (h *ProfileHandler) UpsertTaste(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "authentication required"})
	}

	var req UpsertTasteProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	profile := domain.TasteProfile{
		UserID:           userID,
		Food:             req.Food,
		Culture:          req.Culture,
		Nightlife:        req.Nightlife,
		Outdoors:         req.Outdoors,
		Shopping:         req.Shopping,
		Wellness:         req.Wellness,
		NoveltyTolerance: req.NoveltyTolerance,
	}

	if err := h.profileStore.UpsertTasteProfile(c.Request().Context(), profile); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to save taste profile"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(profile))
}

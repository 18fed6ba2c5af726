package rest

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"wayfinder/business/suggestion"
	jsonres "wayfinder/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ResponseError struct {
	Message string `json:"message"`
}

// newRequestValidator reports violations under the json field names so the
// error envelope matches the wire shape clients actually sent.
func newRequestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationFailed renders struct-tag violations in the same structured
// envelope the intent policy uses, one entry per failed field.
func validationFailed(c echo.Context, err error) error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	violations := make([]suggestion.FieldViolation, 0, len(vErrs))
	for _, fe := range vErrs {
		violations = append(violations, suggestion.FieldViolation{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed %q validation", fe.Tag()),
		})
	}

	return c.JSON(http.StatusBadRequest, jsonres.Error(
		"VALIDATION_FAILED", "Request validation failed", violations,
	))
}

// suggestionError maps pipeline errors onto distinct HTTP outcomes so
// clients can tell quota exhaustion, bad input, and collaborator failures
// apart.
func suggestionError(c echo.Context, err error) error {
	var vErr *suggestion.ValidationError
	if errors.As(err, &vErr) {
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"VALIDATION_FAILED", "Request validation failed", vErr.Violations,
		))
	}

	if errors.Is(err, suggestion.ErrQuotaExceeded) {
		return c.JSON(http.StatusForbidden, jsonres.Error(
			"QUOTA_EXHAUSTED", "Daily suggestion quota exhausted", nil,
		))
	}

	var cErr *suggestion.CollaboratorError
	if errors.As(err, &cErr) {
		return c.JSON(http.StatusBadGateway, jsonres.Error(
			"UPSTREAM_FAILED", "A downstream service failed", map[string]string{
				"collaborator": cErr.Collaborator,
			},
		))
	}

	return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
}

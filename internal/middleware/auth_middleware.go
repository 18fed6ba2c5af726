package middleware

import (
	"net/http"
	"strings"
	"time"

	"wayfinder/business/quota"
	"wayfinder/pkg/utils"

	jsonres "wayfinder/pkg/response"

	"github.com/labstack/echo/v4"
)

// OptionalAuth resolves the caller's identity when a bearer token is present
// and lets anonymous requests through with an empty user id. A token that is
// present but invalid is rejected; silently downgrading a bad token to
// anonymous would hide client bugs and misattribute quota charges.
func OptionalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				c.Set("user_id", "")
				c.Set("role", "")
				return next(c)
			}

			claims, httpErr := parseBearer(c, authHeader)
			if httpErr != nil {
				return httpErr
			}

			applyIdentity(c, claims.UserID, claims.Role)
			return next(c)
		}
	}
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing authorization header", nil,
				))
			}

			claims, httpErr := parseBearer(c, authHeader)
			if httpErr != nil {
				return httpErr
			}

			applyIdentity(c, claims.UserID, claims.Role)
			return next(c)
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || strings.ToUpper(role) != "ADMIN" {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Admin access required", nil,
				))
			}

			return next(c)
		}
	}
}

func parseBearer(c echo.Context, authHeader string) (*utils.JWTClaims, error) {
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "Invalid authorization format", nil,
		))
	}

	claims, err := utils.ParseJWT(tokenParts[1])
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "Invalid token", nil,
		))
	}

	expAt, err := claims.GetExpirationTime()
	if err != nil || time.Now().After(expAt.Time) {
		return nil, c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "Token expired", nil,
		))
	}

	return claims, nil
}

// applyIdentity stores the identity on the echo context for handlers and
// marks premium entitlement on the request context for the quota service.
// The role is canonicalized here so handlers never compare raw claim casing.
func applyIdentity(c echo.Context, userID, role string) {
	role = strings.ToUpper(role)
	c.Set("user_id", userID)
	c.Set("role", role)

	premium := role == "PREMIUM" || role == "ADMIN"
	ctx := quota.WithPremium(c.Request().Context(), premium)
	c.SetRequest(c.Request().WithContext(ctx))
}

package router

import (
	"wayfinder/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupSuggestionRoutes(api *echo.Group, handler *rest.SuggestionHandler, optionalAuth echo.MiddlewareFunc) {
	api.POST("/suggestions", handler.Create, optionalAuth)
}

func SetupQuotaRoutes(api *echo.Group, handler *rest.QuotaHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	api.GET("/quota", handler.Get, authRequired)

	admin := api.Group("/admin", authRequired, adminOnly)
	admin.PUT("/quota/:id", handler.Reset)
}

func SetupProfileRoutes(api *echo.Group, handler *rest.ProfileHandler, authRequired echo.MiddlewareFunc) {
	api.PUT("/profile/taste", handler.UpsertTaste, authRequired)
}

func SetupExclusionRoutes(api *echo.Group, handler *rest.ExclusionHandler, authRequired echo.MiddlewareFunc) {
	api.POST("/exclusions", handler.Add, authRequired)
}

package router

import (
	"mySalesDesk/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/login", handler.Login)

	users.POST("/register", handler.Register, authRequired, adminOnly)
	users.GET("/me", handler.GetUserByID, authRequired)
	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
}

func SetupReportRoutes(api *echo.Group, handler *rest.ReportHandler, authRequired echo.MiddlewareFunc) {
	reports := api.Group("/reports", authRequired)

	reports.GET("/categories", handler.GetCategorySummary)
	reports.GET("/categories/top", handler.GetTopCategories)
	reports.GET("/daily", handler.GetDailySummary)
	reports.GET("/orders", handler.GetOrderSummary)
	reports.GET("/orders/average", handler.GetOrderValues)
	reports.GET("/products", handler.GetProductSummary)
	reports.GET("/products/top", handler.GetTopProducts)
	reports.POST("/share", handler.ShareReport)

	// share codes carry their own expiry, no auth here
	api.GET("/reports/shared/:code", handler.GetSharedReport)
}

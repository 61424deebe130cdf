package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/devsp0007/restaurant-management/internal/handlers"
	"github.com/devsp0007/restaurant-management/internal/service/token"
)

type Deps struct {
	AuthHandler   *handlers.AuthHandler
	MenuHandler   *handlers.MenuHandler
	OrderHandler  *handlers.OrderHandler
	SearchHandler *handlers.SearchHandler
	TokenService  *token.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.LogOut)
	v1.GET("/menu", d.MenuHandler.ListItems)

	orders := v1.Group("/orders", d.TokenService.AutoRefreshMiddleware)

	orders.POST("", d.OrderHandler.PlaceOrder)
	orders.GET("", d.OrderHandler.MyOrders)
	orders.GET("/due", d.OrderHandler.AmountDue)
	orders.POST("/pay", d.OrderHandler.PayBill)

	admin := v1.Group("/admin", d.TokenService.AutoRefreshMiddlewareAdmin)

	admin.POST("/menu", d.MenuHandler.CreateItem)
	admin.DELETE("/menu/:id", d.MenuHandler.DeleteItem)
	admin.GET("/orders", d.OrderHandler.AllOrders)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)
	admin.GET("/orders/search", d.SearchHandler.Search)
	admin.GET("/dashboard", d.OrderHandler.Dashboard)
}

// Package router wires HTTP paths to their handlers. The /api paths are
// frozen for compatibility with the existing storefront clients.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/farmlink/farm-marketplace/internal/handler"
)

// RegisterRoutes registers the full API surface on the provided Echo
// instance.
func RegisterRoutes(e *echo.Echo, p *handler.ProductHandler, f *handler.FarmHandler, u *handler.UserHandler) {
	e.GET("/healthz", handler.Health)

	products := e.Group("/api/products")
	products.GET("/", p.List)
	products.POST("/", p.Create)
	products.GET("/featured", p.Featured)
	products.GET("/:id", p.Get)
	products.PUT("/:id", p.Update)
	products.DELETE("/:id", p.Delete)

	farm := e.Group("/api/farm")
	farm.GET("/", f.List)
	farm.POST("/", f.Create)
	farm.GET("/:id", f.Get)
	farm.GET("/:id/crops", f.ListCrops)
	farm.POST("/:id/crops", f.CreateCrop)
	farm.GET("/:id/soil", f.GetSoil)
	farm.POST("/:id/soil", f.CreateSoil)
	farm.GET("/:id/equipment", f.ListEquipment)
	farm.POST("/:id/equipment", f.CreateEquipment)

	users := e.Group("/api/users")
	users.POST("/register", u.Register)
	users.POST("/login", u.Login)
	users.GET("/:id", u.Get)
	users.PUT("/:id", u.Update)
	users.GET("/:id/orders", u.ListOrders)
}

// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"fenix/internal/delivery/http/middleware"
	"fenix/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	CatalogHandler      *handler.CatalogHandler
	CartHandler         *handler.CartHandler
	OrderHandler        *handler.OrderHandler
	RecurringHandler    *handler.RecurringHandler
	NotificationHandler *handler.NotificationHandler
	SettingsHandler     *handler.SettingsHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	user         *handler.UserHandler
	catalog      *handler.CatalogHandler
	cart         *handler.CartHandler
	order        *handler.OrderHandler
	recurring    *handler.RecurringHandler
	notification *handler.NotificationHandler
	settings     *handler.SettingsHandler
	auth         *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		user:         params.UserHandler,
		catalog:      params.CatalogHandler,
		cart:         params.CartHandler,
		order:        params.OrderHandler,
		recurring:    params.RecurringHandler,
		notification: params.NotificationHandler,
		settings:     params.SettingsHandler,
		auth:         params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.user.Register)
		authGroup.POST("/login", r.user.Login)
	}

	// Everything below requires an authenticated, active account.
	api := e.Group("/api")
	api.Use(r.auth.Authenticate)

	profileGroup := api.Group("/profile")
	{
		profileGroup.GET("", r.user.GetProfile)
		profileGroup.PUT("", r.user.UpdateProfile)
	}

	productGroup := api.Group("/products")
	{
		productGroup.GET("", r.catalog.List)
		productGroup.GET("/:id", r.catalog.Get)
	}

	cartGroup := api.Group("/cart")
	{
		cartGroup.GET("", r.cart.View)
		cartGroup.POST("/items", r.cart.AddItem)
		cartGroup.PUT("/items/:productId", r.cart.SetQuantity)
		cartGroup.DELETE("/items/:productId", r.cart.RemoveItem)
		cartGroup.DELETE("", r.cart.Clear)
	}

	orderGroup := api.Group("/orders")
	{
		orderGroup.POST("", r.order.Checkout)
		orderGroup.GET("", r.order.List)
		orderGroup.GET("/:id", r.order.Get)
		orderGroup.GET("/:id/documents", r.order.ListDocuments)
	}

	recurringGroup := api.Group("/recurring-orders")
	{
		recurringGroup.POST("", r.recurring.Create)
		recurringGroup.GET("", r.recurring.List)
		recurringGroup.GET("/:id", r.recurring.Get)
		recurringGroup.PUT("/:id", r.recurring.Update)
		recurringGroup.DELETE("/:id", r.recurring.Delete)
		recurringGroup.PATCH("/:id/active", r.recurring.SetActive)
	}

	notificationGroup := api.Group("/notifications")
	{
		notificationGroup.GET("", r.notification.List)
		notificationGroup.POST("/:id/read", r.notification.MarkRead)
		notificationGroup.POST("/read-all", r.notification.MarkAllRead)
	}

	api.GET("/settings", r.settings.Get)

	// Staff routes: admins and super admins only.
	adminGroup := api.Group("/admin")
	adminGroup.Use(r.auth.RequireStaff)
	{
		adminGroup.GET("/users", r.user.ListUsers)
		adminGroup.GET("/users/:id", r.user.GetUser)
		adminGroup.POST("/users/:id/approve", r.user.Approve)
		adminGroup.POST("/users/:id/reject", r.user.Reject)
		adminGroup.POST("/users/:id/disable", r.user.Disable)
		adminGroup.PUT("/users/:id/role", r.user.AssignRole)

		adminGroup.POST("/products", r.catalog.Create)
		adminGroup.PUT("/products/:id", r.catalog.Update)
		adminGroup.DELETE("/products/:id", r.catalog.Delete)
		adminGroup.PUT("/products/:id/stock", r.catalog.AdjustStock)

		adminGroup.POST("/orders/:id/status", r.order.ApplyStatus)
		adminGroup.PUT("/orders/:id/eta", r.order.UpdateETA)
		adminGroup.POST("/orders/:id/documents", r.order.UploadDocument)

		adminGroup.GET("/audit-logs", r.settings.ListAudit)
	}

	// Platform settings mutation is reserved for super admins.
	superGroup := api.Group("/admin/settings")
	superGroup.Use(r.auth.RequireStaff, r.auth.RequireSuperAdmin)
	{
		superGroup.PUT("", r.settings.Update)
	}
}

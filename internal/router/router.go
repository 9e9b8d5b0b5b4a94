// Package router assembles the gin engine and its route groups.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/handler"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/middleware"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/model"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/token"
)

// Handlers bundles the handler set the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
}

// New builds the gin engine with all routes mounted. Catalogue reads are
// public; cart and order routes require the customer role; catalogue
// writes and order status updates require the admin role.
func New(h Handlers, tokens *token.Manager, logger zerolog.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.Recovery(logger),
		middleware.Logging(logger),
		cors.New(cors.Config{
			AllowOrigins:     []string{"*"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	authed := middleware.Authenticate(tokens)
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	customerOnly := middleware.RequireRole(model.RoleCustomer)

	categories := api.Group("/categories")
	{
		categories.GET("", h.Category.GetAll)
		categories.GET("/:id", h.Category.GetByID)
		categories.POST("", authed, adminOnly, h.Category.Create)
		categories.PUT("/:id", authed, adminOnly, h.Category.Update)
		categories.DELETE("/:id", authed, adminOnly, h.Category.Delete)
	}

	products := api.Group("/products")
	{
		products.GET("", h.Product.GetAll)
		products.GET("/:id", h.Product.GetByID)
		products.POST("", authed, adminOnly, h.Product.Create)
		products.PUT("/:id", authed, adminOnly, h.Product.Update)
		products.DELETE("/:id", authed, adminOnly, h.Product.Delete)
	}

	cart := api.Group("/cart", authed, customerOnly)
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:id", h.Cart.UpdateItem)
		cart.DELETE("/items/:id", h.Cart.RemoveItem)
		cart.DELETE("/clear", h.Cart.Clear)
	}

	orders := api.Group("/orders", authed)
	{
		orders.POST("", customerOnly, h.Order.Create)
		orders.GET("", customerOnly, h.Order.GetAll)
		orders.GET("/:id", customerOnly, h.Order.GetByID)
		orders.PUT("/:id/status", adminOnly, h.Order.UpdateStatus)
	}

	return engine
}

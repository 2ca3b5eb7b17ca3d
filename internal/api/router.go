package api

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"workshop-backend/config"
	"workshop-backend/internal/auth"
	"workshop-backend/internal/mw"
	"workshop-backend/internal/workorder"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(orders workorder.Service, identity auth.IdentityProvider, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()
	r.Use(mw.RequestID())

	handler := NewHandler(orders)
	limiter := mw.NewIPRateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	// API group
	api := r.Group("/api")
	api.Use(mw.RateLimiter(limiter))
	{
		api.GET("/health", Health)

		wo := api.Group("/work-orders")
		wo.Use(mw.Authenticate(identity))
		wo.POST("", handler.CreateWorkOrder)
		wo.GET("", handler.ListWorkOrders)
		wo.GET("/:id", handler.GetWorkOrder)
		wo.PATCH("/:id/status", handler.ChangeStatus)
		wo.GET("/:id/history", handler.ListHistory)
		wo.POST("/:id/items", handler.AddItem)
		wo.DELETE("/:id/items/:itemId", handler.DeleteOrderItem)
		wo.DELETE("/items/:itemId", handler.DeleteItem)
	}

	return r
}

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workshop-backend/internal/mw"
	"workshop-backend/internal/workorder"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	orders workorder.Service
}

// NewHandler creates a new API handler.
func NewHandler(orders workorder.Service) *Handler {
	return &Handler{orders: orders}
}

// Health handles GET /api/health.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// actor returns the authenticated actor or aborts with 401.
func actor(c *gin.Context) (workorder.Actor, bool) {
	a, ok := mw.ActorFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
	return a, ok
}

// pathID parses a positive numeric path parameter or aborts with 400.
func pathID(c *gin.Context, name, what string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, workorder.BadRequest("invalid %s id %q", what, c.Param(name)))
		return 0, false
	}
	return uint(id), true
}

// pageParams reads page and pageSize; the service applies defaults and caps.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("pageSize"))
	return page, size
}

type listResponse[T any] struct {
	Data       []T                  `json:"data"`
	Pagination workorder.Pagination `json:"pagination"`
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workshop-backend/internal/model"
)

// ListHistory handles GET /api/work-orders/:id/history.
func (h *Handler) ListHistory(c *gin.Context) {
	id, ok := pathID(c, "id", "work order")
	if !ok {
		return
	}
	page, size := pageParams(c)

	entries, pagination, err := h.orders.ListHistory(c.Request.Context(), id, page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[model.StatusHistoryEntry]{Data: entries, Pagination: pagination})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"workshop-backend/internal/model"
	"workshop-backend/internal/workorder"
)

type addItemRequest struct {
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Count       *int             `json:"count" binding:"required"`
	UnitValue   *decimal.Decimal `json:"unit_value" binding:"required"`
}

type addItemResponse struct {
	Item  *model.OrderItem `json:"item"`
	Total decimal.Decimal  `json:"total"`
}

type deleteItemResponse struct {
	Message string          `json:"message"`
	Total   decimal.Decimal `json:"total"`
}

// AddItem handles POST /api/work-orders/:id/items.
func (h *Handler) AddItem(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "id", "work order")
	if !ok {
		return
	}

	var req addItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, total, err := h.orders.AddItem(c.Request.Context(), orderID, workorder.AddItemInput{
		Type:        model.ItemType(req.Type),
		Description: req.Description,
		Count:       *req.Count,
		UnitValue:   *req.UnitValue,
	}, a)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addItemResponse{Item: item, Total: total})
}

// DeleteItem handles DELETE /api/work-orders/items/:itemId.
func (h *Handler) DeleteItem(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId", "item")
	if !ok {
		return
	}

	total, err := h.orders.DeleteItem(c.Request.Context(), itemID, a)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleteItemResponse{Message: "item deleted", Total: total})
}

// DeleteOrderItem handles DELETE /api/work-orders/:id/items/:itemId.
func (h *Handler) DeleteOrderItem(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "id", "work order")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId", "item")
	if !ok {
		return
	}

	total, err := h.orders.DeleteOrderItem(c.Request.Context(), orderID, itemID, a)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleteItemResponse{Message: "item deleted", Total: total})
}

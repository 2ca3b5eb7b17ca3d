package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workshop-backend/internal/model"
	"workshop-backend/internal/workorder"
)

type createWorkOrderRequest struct {
	VehicleID        *uint  `json:"vehicle_id" binding:"required"`
	EntryDate        string `json:"entry_date"`
	FaultDescription string `json:"fault_description"`
}

// changeStatusRequest accepts "status" as an older spelling of "toStatus".
type changeStatusRequest struct {
	ToStatus string  `json:"toStatus"`
	Status   string  `json:"status"`
	Note     *string `json:"note"`
}

// CreateWorkOrder handles POST /api/work-orders.
func (h *Handler) CreateWorkOrder(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req createWorkOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orders.CreateWorkOrder(c.Request.Context(), workorder.CreateInput{
		VehicleID:        *req.VehicleID,
		EntryDate:        req.EntryDate,
		FaultDescription: req.FaultDescription,
	}, a)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListWorkOrders handles GET /api/work-orders.
func (h *Handler) ListWorkOrders(c *gin.Context) {
	page, size := pageParams(c)
	filters := workorder.ListFilters{
		Status: model.Status(c.Query("status")),
		Plate:  c.Query("plate"),
	}

	orders, pagination, err := h.orders.List(c.Request.Context(), filters, page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[model.WorkOrder]{Data: orders, Pagination: pagination})
}

// GetWorkOrder handles GET /api/work-orders/:id.
func (h *Handler) GetWorkOrder(c *gin.Context) {
	id, ok := pathID(c, "id", "work order")
	if !ok {
		return
	}

	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ChangeStatus handles PATCH /api/work-orders/:id/status.
func (h *Handler) ChangeStatus(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "work order")
	if !ok {
		return
	}

	var req changeStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	in := workorder.StatusChangeInput{ToStatus: model.Status(req.ToStatus)}
	if in.ToStatus == "" {
		in.ToStatus = model.Status(req.Status)
	}
	if req.Note != nil {
		in.Note = *req.Note
	}

	order, err := h.orders.ChangeStatus(c.Request.Context(), id, in, a)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

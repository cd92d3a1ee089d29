package handlers

import (
	"net/http"

	"brewheaven-api/datasource"
	"brewheaven-api/events"
	"brewheaven-api/middleware"
	"brewheaven-api/models"

	"github.com/gin-gonic/gin"
)

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// CreateOrder places an order. Totals come from menu prices, not the client.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req datasource.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	order, err := h.data.CreateOrder(ctx, req)
	if err != nil {
		h.fail(c, err, "Failed to place order")
		return
	}
	h.publish(ctx, events.NewOrderCreated(order))
	c.JSON(http.StatusCreated, order)
}

// ListOrders returns all orders newest first, ?status= filters (staff only)
func (h *Handler) ListOrders(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	orders, err := h.data.ListOrders(ctx)
	if err != nil {
		h.fail(c, err, "Failed to fetch orders")
		return
	}
	if status := models.OrderStatus(c.Query("status")); status != "" {
		filtered := make([]models.Order, 0, len(orders))
		for _, o := range orders {
			if o.Status == status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order by id
func (h *Handler) GetOrder(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	order, err := h.data.GetOrder(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus handles staff state transitions
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	order, err := h.data.UpdateOrderStatus(ctx, c.Param("id"), req.Status,
		middleware.GetRole(c), middleware.GetEmail(c), req.Note)
	if err != nil {
		h.fail(c, err, "Failed to update order status")
		return
	}
	h.publish(ctx, events.NewStatusChanged(order))
	c.JSON(http.StatusOK, order)
}

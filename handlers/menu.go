package handlers

import (
	"net/http"
	"strconv"

	"brewheaven-api/models"

	"github.com/gin-gonic/gin"
)

type MenuItemRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Category     string  `json:"category" binding:"required"`
	Price        float64 `json:"price" binding:"gte=0"`
	Available    *bool   `json:"available"`
	IsBestseller bool    `json:"isBestseller"`
}

// GetMenu returns every available item. Never an error: the static menu
// answers when no backend does.
func (h *Handler) GetMenu(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()
	c.JSON(http.StatusOK, h.data.GetMenu(ctx))
}

// GetBestsellers returns the top sellers, ?limit=N
func (h *Handler) GetBestsellers(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	c.JSON(http.StatusOK, h.data.GetBestsellers(ctx, limit))
}

// GetMenuItem returns a single item
func (h *Handler) GetMenuItem(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	item, err := h.data.GetMenuItem(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to fetch menu item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// AddMenuItem creates a menu item (staff only)
func (h *Handler) AddMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item := models.MenuItem{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		Available:    true,
		IsBestseller: req.IsBestseller,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	ctx, cancel := h.ctx(c)
	defer cancel()
	created, err := h.data.AddMenuItem(ctx, item)
	if err != nil {
		h.fail(c, err, "Failed to add menu item")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateMenuItem applies a partial update (staff only)
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	var patch models.MenuItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	updated, err := h.data.UpdateMenuItem(ctx, c.Param("id"), patch)
	if err != nil {
		h.fail(c, err, "Failed to update menu item")
		return
	}
	c.JSON(http.StatusOK, updated)
}

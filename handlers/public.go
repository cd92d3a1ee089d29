package handlers

import (
	"net/http"

	"brewheaven-api/models"
	"brewheaven-api/statemachine"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "BrewHeaven Cafe API"
	serviceVersion = "1.0.0"
)

// Welcome lists the entry points
func (h *Handler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "☕ Welcome to the BrewHeaven Cafe API",
		"health":  "/health",
		"status":  "/api/status",
		"docs":    "/api/state-machine",
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// Status reports which data sources and optional services are wired,
// without exposing any connection settings.
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"backendPreference":  h.data.Preference().String(),
		"backends":           h.data.Backends(),
		"staticFallback":     true,
		"generativeFallback": h.bot.GenerativeEnabled(),
		"orderEvents":        h.eventsOn,
		"staffLogin":         h.staff.Email != "" && h.staff.PasswordHash != "",
	})
}

// GetStateMachineInfo returns the full order state machine for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	var terminal []models.OrderStatus
	for _, s := range []models.OrderStatus{models.StatusPending, models.StatusPreparing, models.StatusCompleted, models.StatusCancelled} {
		if statemachine.IsTerminal(s) {
			terminal = append(terminal, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": terminal,
		"description":     "BrewHeaven Cafe Order Lifecycle State Machine",
	})
}

package routes

import (
	"brewheaven-api/handlers"
	"brewheaven-api/middleware"
	"brewheaven-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, jwtSecret []byte) {
	r.GET("/", h.Welcome)
	r.GET("/health", h.Health)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/login", h.Login)

		// Chat
		public.POST("/message", h.SendMessage)
		public.GET("/messages", h.GetMessages)
		public.POST("/bot-response", h.GetBotResponse)

		// Menu (no auth needed)
		public.GET("/menu", h.GetMenu)
		public.GET("/menu/:id", h.GetMenuItem)
		public.GET("/bestsellers", h.GetBestsellers)

		// Checkout and order tracking
		public.POST("/orders", h.CreateOrder)
		public.GET("/orders/:id", h.GetOrder)

		public.GET("/status", h.Status)
		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Staff routes ───────────────────────────────────────────────
	staff := r.Group("/api")
	staff.Use(middleware.AuthRequired(jwtSecret), middleware.RoleRequired(models.RoleStaff))
	{
		// Menu management
		staff.POST("/menu", h.AddMenuItem)
		staff.PUT("/menu/:id", h.UpdateMenuItem)

		// Order management
		staff.GET("/orders", h.ListOrders)
		staff.PUT("/orders/:id", h.UpdateOrderStatus)
	}
}

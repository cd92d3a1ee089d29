package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"brewheaven-api/chatbot"
	"brewheaven-api/datasource"
	"brewheaven-api/events"
	"brewheaven-api/middleware"
	"brewheaven-api/models"

	"github.com/gin-gonic/gin"
)

const defaultRequestTimeout = 15 * time.Second

type Options struct {
	Data      *datasource.Resolver
	Bot       *chatbot.Composer
	Events    events.Publisher
	EventsOn  bool
	Staff     models.Staff
	JWTSecret []byte
	Timeout   time.Duration
	Logger    *slog.Logger
}

// Handler carries the dependencies shared by every route.
type Handler struct {
	data      *datasource.Resolver
	bot       *chatbot.Composer
	events    events.Publisher
	eventsOn  bool
	staff     models.Staff
	jwtSecret []byte
	timeout   time.Duration
	logger    *slog.Logger
}

func New(opts Options) *Handler {
	if opts.Events == nil {
		opts.Events = events.Noop{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultRequestTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Handler{
		data:      opts.Data,
		bot:       opts.Bot,
		events:    opts.Events,
		eventsOn:  opts.EventsOn,
		staff:     opts.Staff,
		jwtSecret: opts.JWTSecret,
		timeout:   opts.Timeout,
		logger:    opts.Logger.With("component", "http"),
	}
}

// ctx bounds backend and generative calls made on behalf of one request.
func (h *Handler) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// fail reports err with the status its kind calls for. Unexpected errors are
// logged and replaced by msg so backend details never reach the caller.
func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, datasource.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, datasource.ErrMenuItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
	case errors.Is(err, datasource.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, datasource.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Error(msg, "error", err, "request_id", middleware.GetRequestID(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func (h *Handler) publish(ctx context.Context, ev events.OrderEvent) {
	if err := h.events.Publish(ctx, ev); err != nil {
		h.logger.Warn("order event not published", "type", ev.Type, "order_id", ev.OrderID, "error", err)
	}
}

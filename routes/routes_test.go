package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"brewheaven-api/chatbot"
	"brewheaven-api/datasource"
	"brewheaven-api/events"
	"brewheaven-api/handlers"
	"brewheaven-api/middleware"
	"brewheaven-api/models"
	"brewheaven-api/store/relational"
	"brewheaven-api/store/static"
)

var secret = []byte("routes-secret")

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) kinds() []events.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Kind, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

type app struct {
	router    *gin.Engine
	publisher *recordingPublisher
}

// newApp serves the real routes over a temp sqlite backend whose menu starts
// empty, so prices come from the bundled menu.
func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "routes.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, relational.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	dataset, err := static.Bundled()
	require.NoError(t, err)
	kb, err := chatbot.DefaultKnowledgeBase()
	require.NoError(t, err)
	hash, err := bcrypt.GenerateFromPassword([]byte("latte-art"), bcrypt.MinCost)
	require.NoError(t, err)

	pub := &recordingPublisher{}
	h := handlers.New(handlers.Options{
		Data: datasource.New(datasource.Options{
			Preference: datasource.RelationalThenDocument,
			Relational: relational.New(db),
			Static:     dataset,
			Logger:     log,
		}),
		Bot:       chatbot.NewComposer(kb, nil, log),
		Events:    pub,
		EventsOn:  true,
		Staff:     models.Staff{Email: "barista@brewheaven.test", PasswordHash: string(hash), Role: models.RoleStaff},
		JWTSecret: secret,
		Logger:    log,
	})

	r := gin.New()
	r.Use(middleware.CORS(), middleware.RequestID())
	SetupRoutes(r, h, secret)
	return &app{router: r, publisher: pub}
}

func (a *app) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *app) login(t *testing.T) string {
	t.Helper()
	w := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "barista@brewheaven.test", "password": "latte-art"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Token
}

func TestStaffRoutesRequireToken(t *testing.T) {
	a := newApp(t)

	protected := []struct{ method, path string }{
		{http.MethodGet, "/api/orders"},
		{http.MethodPut, "/api/orders/abc"},
		{http.MethodPost, "/api/menu"},
		{http.MethodPut, "/api/menu/1"},
	}
	for _, p := range protected {
		w := a.do(p.method, p.path, "", gin.H{})
		assert.Equal(t, http.StatusUnauthorized, w.Code, p.method+" "+p.path)
	}
}

func TestOrderLifecycle(t *testing.T) {
	a := newApp(t)

	// client prices are ignored: Cappuccino is 180 and Croissant 160
	w := a.do(http.MethodPost, "/api/orders", "", gin.H{
		"customerName": "Ana",
		"notes":        "extra hot",
		"items": []gin.H{
			{"menuItemId": "3", "quantity": 2, "price": 1},
			{"menuItemId": "9", "quantity": 1, "price": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, 520.0, order.TotalPrice)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Len(t, order.ID, 36)

	w = a.do(http.MethodGet, "/api/orders/"+order.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	token := a.login(t)

	w = a.do(http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)

	w = a.do(http.MethodGet, "/api/orders?status=Completed", token, nil)
	assert.Equal(t, "[]", w.Body.String())

	w = a.do(http.MethodPut, "/api/orders/"+order.ID, token, gin.H{"status": "Preparing", "note": "on the bar"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, models.StatusPreparing, order.Status)
	require.Len(t, order.History, 2)
	assert.Equal(t, "barista@brewheaven.test", order.History[1].ChangedBy)

	w = a.do(http.MethodPut, "/api/orders/"+order.ID, token, gin.H{"status": "Completed"})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodPut, "/api/orders/"+order.ID, token, gin.H{"status": "Cancelled"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "terminal")

	w = a.do(http.MethodPut, "/api/orders/"+order.ID, token, gin.H{"status": "Shipped"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPut, "/api/orders/does-not-exist", token, gin.H{"status": "Preparing"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, []events.Kind{events.OrderCreated, events.OrderStatusChanged, events.OrderStatusChanged}, a.publisher.kinds())

	w = a.do(http.MethodGet, "/api/messages", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var msgs []models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, "Order placed for Ana. Order ID: "+order.ID+". Total: ₱520.00", msgs[0].Content)
	assert.Equal(t, models.SenderBot, msgs[0].Sender)
}

func TestChatIsStored(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodPost, "/api/message", "", gin.H{"content": "Do you have oat milk?"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/api/bot-response", "", gin.H{"userMessage": "what are your hours?"})
	require.Equal(t, http.StatusOK, w.Code)
	var reply struct {
		Response string          `json:"response"`
		Message  *models.Message `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	require.NotNil(t, reply.Message)
	assert.Equal(t, reply.Response, reply.Message.Content)

	w = a.do(http.MethodGet, "/api/messages", "", nil)
	var msgs []models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msgs))
	require.Len(t, msgs, 2)
	assert.Equal(t, models.SenderUser, msgs[0].Sender)
	assert.Equal(t, models.SenderBot, msgs[1].Sender)
}

func TestMenuManagement(t *testing.T) {
	a := newApp(t)
	token := a.login(t)

	// empty backend: the bundled menu answers
	w := a.do(http.MethodGet, "/api/menu", "", nil)
	var menu []models.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	assert.Len(t, menu, 12)

	w = a.do(http.MethodPost, "/api/menu", token, gin.H{
		"name": "Spanish Latte", "category": "Coffee", "price": 210, "description": "Condensed milk latte",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Available)

	// the backend now has data, so it wins over the bundled menu
	w = a.do(http.MethodGet, "/api/menu", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	require.Len(t, menu, 1)
	assert.Equal(t, "Spanish Latte", menu[0].Name)

	w = a.do(http.MethodPut, "/api/menu/"+created.ID, token, gin.H{"price": 220, "isBestseller": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 220.0, updated.Price)
	assert.True(t, updated.IsBestseller)

	w = a.do(http.MethodPut, "/api/menu/missing", token, gin.H{"price": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodPost, "/api/menu", token, gin.H{"name": "Free Refill", "category": "Coffee", "price": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	a := newApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

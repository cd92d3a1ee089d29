package datasource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"brewheaven-api/models"
	"brewheaven-api/store"
)

var errMockDown = fmt.Errorf("%w: mock connection refused", store.ErrUnavailable)

// mockBackend implements store.Backend for testing. Unset funcs behave like
// an unreachable backend.
type mockBackend struct {
	name string

	mu    sync.Mutex
	calls []string

	ListMenuFunc          func(ctx context.Context, filter store.MenuFilter) ([]models.MenuItem, error)
	GetMenuItemFunc       func(ctx context.Context, id string) (*models.MenuItem, error)
	CreateMenuItemFunc    func(ctx context.Context, item *models.MenuItem) error
	UpdateMenuItemFunc    func(ctx context.Context, item *models.MenuItem) error
	CreateOrderFunc       func(ctx context.Context, order *models.Order) error
	GetOrderFunc          func(ctx context.Context, id string) (*models.Order, error)
	ListOrdersFunc        func(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatusFunc func(ctx context.Context, id string, status models.OrderStatus, change models.StatusChange) error
	AppendMessageFunc     func(ctx context.Context, msg *models.Message) error
	ListMessagesFunc      func(ctx context.Context) ([]models.Message, error)
}

func newMock(name string) *mockBackend { return &mockBackend{name: name} }

func (m *mockBackend) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, op)
}

func (m *mockBackend) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockBackend) Name() string { return m.name }

func (m *mockBackend) ListMenu(ctx context.Context, filter store.MenuFilter) ([]models.MenuItem, error) {
	m.record("ListMenu")
	if m.ListMenuFunc != nil {
		return m.ListMenuFunc(ctx, filter)
	}
	return nil, errMockDown
}

func (m *mockBackend) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	m.record("GetMenuItem")
	if m.GetMenuItemFunc != nil {
		return m.GetMenuItemFunc(ctx, id)
	}
	return nil, errMockDown
}

func (m *mockBackend) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	m.record("CreateMenuItem")
	if m.CreateMenuItemFunc != nil {
		return m.CreateMenuItemFunc(ctx, item)
	}
	return errMockDown
}

func (m *mockBackend) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	m.record("UpdateMenuItem")
	if m.UpdateMenuItemFunc != nil {
		return m.UpdateMenuItemFunc(ctx, item)
	}
	return errMockDown
}

func (m *mockBackend) CreateOrder(ctx context.Context, order *models.Order) error {
	m.record("CreateOrder")
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, order)
	}
	return errMockDown
}

func (m *mockBackend) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	m.record("GetOrder")
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ctx, id)
	}
	return nil, errMockDown
}

func (m *mockBackend) ListOrders(ctx context.Context) ([]models.Order, error) {
	m.record("ListOrders")
	if m.ListOrdersFunc != nil {
		return m.ListOrdersFunc(ctx)
	}
	return nil, errMockDown
}

func (m *mockBackend) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, change models.StatusChange) error {
	m.record("UpdateOrderStatus")
	if m.UpdateOrderStatusFunc != nil {
		return m.UpdateOrderStatusFunc(ctx, id, status, change)
	}
	return errMockDown
}

func (m *mockBackend) AppendMessage(ctx context.Context, msg *models.Message) error {
	m.record("AppendMessage")
	if m.AppendMessageFunc != nil {
		return m.AppendMessageFunc(ctx, msg)
	}
	return errMockDown
}

func (m *mockBackend) ListMessages(ctx context.Context) ([]models.Message, error) {
	m.record("ListMessages")
	if m.ListMessagesFunc != nil {
		return m.ListMessagesFunc(ctx)
	}
	return nil, errMockDown
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// menuBackend serves a fixed menu by id and accepts every write.
func menuBackend(name string, items ...models.MenuItem) *mockBackend {
	m := newMock(name)
	m.ListMenuFunc = func(_ context.Context, filter store.MenuFilter) ([]models.MenuItem, error) {
		var out []models.MenuItem
		for _, item := range items {
			if filter.Match(item) {
				out = append(out, item)
			}
		}
		return out, nil
	}
	m.GetMenuItemFunc = func(_ context.Context, id string) (*models.MenuItem, error) {
		for _, item := range items {
			if item.ID == id {
				found := item
				return &found, nil
			}
		}
		return nil, store.ErrNotFound
	}
	m.CreateOrderFunc = func(_ context.Context, order *models.Order) error {
		order.ID = name + "-order-1"
		return nil
	}
	m.AppendMessageFunc = func(_ context.Context, msg *models.Message) error {
		msg.ID = name + "-msg"
		return nil
	}
	return m
}

package relational

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"brewheaven-api/models"
	"brewheaven-api/store"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return New(db), db
}

func seedMenu(t *testing.T, s *Store) {
	t.Helper()
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	items := []models.MenuItem{
		{Name: "Espresso", Category: models.CategoryCoffee, Price: 100, Available: true, SalesCount: 30, IsBestseller: true},
		{Name: "Latte", Category: models.CategoryCoffee, Price: 200, Available: true, SalesCount: 50, IsBestseller: true},
		{Name: "Cheesecake", Category: models.CategoryDessert, Price: 240, Available: false, SalesCount: 90, IsBestseller: true},
		{Name: "Green Tea", Category: models.CategoryTea, Price: 110, Available: true, SalesCount: 10},
	}
	for i := range items {
		items[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.CreateMenuItem(context.Background(), &items[i]))
		require.NotEmpty(t, items[i].ID)
	}
}

func TestListMenu(t *testing.T) {
	s, _ := newTestStore(t)
	seedMenu(t, s)

	items, err := s.ListMenu(context.Background(), store.MenuFilter{AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Espresso", items[0].Name)
	assert.Equal(t, "Latte", items[1].Name)
	assert.Equal(t, "Green Tea", items[2].Name)
}

func TestListMenu_Bestsellers(t *testing.T) {
	s, _ := newTestStore(t)
	seedMenu(t, s)

	items, err := s.ListMenu(context.Background(), store.MenuFilter{AvailableOnly: true, BestsellersOnly: true, Limit: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Latte", items[0].Name)
}

func TestMenuItem_GetAndUpdate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	item := &models.MenuItem{Name: "Mocha", Category: models.CategoryCoffee, Price: 220, Available: true}
	require.NoError(t, s.CreateMenuItem(ctx, item))

	item.Price = 230
	item.Available = false
	require.NoError(t, s.UpdateMenuItem(ctx, item))

	got, err := s.GetMenuItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 230.0, got.Price)
	assert.False(t, got.Available)

	_, err = s.GetMenuItem(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.UpdateMenuItem(ctx, &models.MenuItem{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestOrders(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first := &models.Order{
		CustomerName: "Ana",
		Items:        []models.OrderItem{{MenuItemID: "1", Name: "Latte", Quantity: 2, Price: 200}},
		TotalPrice:   400,
		Status:       models.StatusPending,
		CreatedAt:    time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	second := &models.Order{
		CustomerName: "Ben",
		Items:        []models.OrderItem{{MenuItemID: "2", Name: "Espresso", Quantity: 1, Price: 100}},
		TotalPrice:   100,
		Status:       models.StatusPending,
		CreatedAt:    time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.CreateOrder(ctx, first))
	require.NoError(t, s.CreateOrder(ctx, second))

	got, err := s.GetOrder(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.CustomerName)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Ben", orders[0].CustomerName)

	change := models.StatusChange{From: models.StatusPending, To: models.StatusPreparing, ChangedBy: "staff@brewheaven.test", At: time.Now()}
	require.NoError(t, s.UpdateOrderStatus(ctx, first.ID, models.StatusPreparing, change))

	got, err = s.GetOrder(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, got.Status)
	require.Len(t, got.History, 1)
	assert.Equal(t, models.StatusPreparing, got.History[0].To)

	err = s.UpdateOrderStatus(ctx, "missing", models.StatusCompleted, change)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// change still claims Pending but the order has moved on
	stale := models.StatusChange{From: models.StatusPending, To: models.StatusCancelled, At: time.Now()}
	err = s.UpdateOrderStatus(ctx, first.ID, models.StatusCancelled, stale)
	assert.ErrorIs(t, err, store.ErrConflict)
	got, err = s.GetOrder(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, got.Status)
	assert.Len(t, got.History, 1)
}

func TestMessages(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.AppendMessage(ctx, &models.Message{Content: "second", Sender: models.SenderBot, CreatedAt: base.Add(time.Second)}))
	require.NoError(t, s.AppendMessage(ctx, &models.Message{Content: "first", Sender: models.SenderUser, CreatedAt: base}))

	msgs, err := s.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, "second", msgs[1].Content)
}

func TestClosedDatabaseIsUnavailable(t *testing.T) {
	s, db := newTestStore(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = s.ListMenu(context.Background(), store.MenuFilter{})
	assert.ErrorIs(t, err, store.ErrUnavailable)

	err = s.CreateOrder(context.Background(), &models.Order{CustomerName: "x"})
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

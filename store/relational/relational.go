// Package relational is backend A: menu, orders and the chat log stored
// through gorm on sqlite or postgres.
package relational

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"brewheaven-api/models"
	"brewheaven-api/store"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the tables used by the store.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.MenuItem{},
		&models.Order{},
		&models.Message{},
	)
}

func (s *Store) Name() string { return "relational" }

func wrap(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return fmt.Errorf("%w: %s: %v", store.ErrUnavailable, op, err)
}

// ── Menu ────────────────────────────────────────────────────────────────────

func (s *Store) ListMenu(ctx context.Context, filter store.MenuFilter) ([]models.MenuItem, error) {
	query := s.db.WithContext(ctx).Model(&models.MenuItem{})
	if filter.AvailableOnly {
		query = query.Where("available = ?", true)
	}
	if filter.BestsellersOnly {
		query = query.Where("is_bestseller = ?", true).Order("sales_count desc")
	}
	query = query.Order("created_at asc").Order("id asc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		return nil, wrap("list menu", err)
	}
	return items, nil
}

func (s *Store) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, wrap("get menu item", err)
	}
	return &item, nil
}

func (s *Store) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return wrap("create menu item", err)
	}
	return nil
}

func (s *Store) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	item.UpdatedAt = time.Now()
	res := s.db.WithContext(ctx).Model(item).
		Select("name", "description", "category", "price", "available", "is_bestseller", "updated_at").
		Updates(item)
	if res.Error != nil {
		return wrap("update menu item", res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ── Orders ──────────────────────────────────────────────────────────────────

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return wrap("create order", err)
	}
	return nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, wrap("get order", err)
	}
	return &order, nil
}

func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, wrap("list orders", err)
	}
	return orders, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, change models.StatusChange) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			return err
		}
		if order.Status != change.From {
			return store.ErrConflict
		}
		order.Status = status
		order.History = append(order.History, change)
		order.UpdatedAt = time.Now()
		res := tx.Model(&order).Where("status = ?", change.From).
			Select("status", "history", "updated_at").Updates(&order)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrConflict
		}
		return nil
	})
	if errors.Is(err, store.ErrConflict) {
		return err
	}
	if err != nil {
		return wrap("update order status", err)
	}
	return nil
}

// ── Messages ────────────────────────────────────────────────────────────────

func (s *Store) AppendMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return wrap("append message", err)
	}
	return nil
}

func (s *Store) ListMessages(ctx context.Context) ([]models.Message, error) {
	var msgs []models.Message
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&msgs).Error; err != nil {
		return nil, wrap("list messages", err)
	}
	return msgs, nil
}

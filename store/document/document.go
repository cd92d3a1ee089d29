// Package document is backend B: the same data kept in MongoDB collections.
package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"brewheaven-api/models"
	"brewheaven-api/store"
)

const (
	menuCollection     = "menu"
	ordersCollection   = "orders"
	messagesCollection = "messages"
)

type Store struct {
	menu     *mongo.Collection
	orders   *mongo.Collection
	messages *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		menu:     db.Collection(menuCollection),
		orders:   db.Collection(ordersCollection),
		messages: db.Collection(messagesCollection),
	}
}

func (s *Store) Name() string { return "document" }

func wrap(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return fmt.Errorf("%w: %s: %v", store.ErrUnavailable, op, err)
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

// menuQuery translates a MenuFilter into a find filter and options.
func menuQuery(filter store.MenuFilter) (bson.D, *options.FindOptions) {
	query := bson.D{}
	if filter.AvailableOnly {
		query = append(query, bson.E{Key: "available", Value: true})
	}
	opts := options.Find()
	if filter.BestsellersOnly {
		query = append(query, bson.E{Key: "isBestseller", Value: true})
		opts.SetSort(bson.D{{Key: "salesCount", Value: -1}, {Key: "createdAt", Value: 1}})
	} else {
		opts.SetSort(bson.D{{Key: "createdAt", Value: 1}})
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	return query, opts
}

// ── Menu ────────────────────────────────────────────────────────────────────

func (s *Store) ListMenu(ctx context.Context, filter store.MenuFilter) ([]models.MenuItem, error) {
	query, opts := menuQuery(filter)
	cur, err := s.menu.Find(ctx, query, opts)
	if err != nil {
		return nil, wrap("list menu", err)
	}
	items := []models.MenuItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, wrap("list menu", err)
	}
	return items, nil
}

func (s *Store) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.menu.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, wrap("get menu item", err)
	}
	return &item, nil
}

func (s *Store) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	if item.ID == "" {
		item.ID = newID()
	}
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	if _, err := s.menu.InsertOne(ctx, item); err != nil {
		return wrap("create menu item", err)
	}
	return nil
}

func (s *Store) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	item.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":         item.Name,
		"description":  item.Description,
		"category":     item.Category,
		"price":        item.Price,
		"available":    item.Available,
		"isBestseller": item.IsBestseller,
		"updatedAt":    item.UpdatedAt,
	}}
	res, err := s.menu.UpdateOne(ctx, bson.M{"_id": item.ID}, update)
	if err != nil {
		return wrap("update menu item", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ── Orders ──────────────────────────────────────────────────────────────────

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = newID()
	}
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	// $push on statusHistory needs an array, not null
	if order.History == nil {
		order.History = []models.StatusChange{}
	}
	if _, err := s.orders.InsertOne(ctx, order); err != nil {
		return wrap("create order", err)
	}
	return nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := s.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, wrap("get order", err)
	}
	return &order, nil
}

func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.orders.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, wrap("list orders", err)
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, wrap("list orders", err)
	}
	return orders, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, change models.StatusChange) error {
	update := bson.M{
		"$set":  bson.M{"status": status, "updatedAt": time.Now()},
		"$push": bson.M{"statusHistory": change},
	}
	res, err := s.orders.UpdateOne(ctx, bson.M{"_id": id, "status": change.From}, update)
	if err != nil {
		return wrap("update order status", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	n, err := s.orders.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return wrap("update order status", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return store.ErrConflict
}

// ── Messages ────────────────────────────────────────────────────────────────

func (s *Store) AppendMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = newID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	if _, err := s.messages.InsertOne(ctx, msg); err != nil {
		return wrap("append message", err)
	}
	return nil
}

func (s *Store) ListMessages(ctx context.Context) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := s.messages.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, wrap("list messages", err)
	}
	msgs := []models.Message{}
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, wrap("list messages", err)
	}
	return msgs, nil
}

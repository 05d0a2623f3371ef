package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mdwaseel/batsdatacollection/internal/model"
)

// PersistenceError wraps a store failure. The message is truncated so remote
// driver noise never floods responses or logs; nothing is retried.
type PersistenceError struct {
	Op      string
	Message string
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Message limits mirror what the operator sees per operation: inserts carry
// schema violation detail and get a longer budget than reads.
const (
	createMsgLimit = 200
	queryMsgLimit  = 100
)

func wrap(op string, err error, limit int) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if len(msg) > limit {
		msg = msg[:limit]
	}
	return &PersistenceError{Op: op, Message: msg}
}

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	// ListAll returns every product newest-first. An empty catalog yields an
	// empty slice, not an error.
	ListAll(ctx context.Context) ([]model.Product, error)
	// Search matches query as a case-insensitive substring of product name
	// or SKU.
	Search(ctx context.Context, query string) ([]model.Product, error)
	// Delete reports success even when no row matched; the original behavior
	// never distinguished "deleted" from "was not there".
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)

	// DB exposes the underlying *gorm.DB for health checks.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return wrap("create product", r.db.WithContext(ctx).Create(p).Error, createMsgLimit)
}

func (r *productRepo) ListAll(ctx context.Context) ([]model.Product, error) {
	products := make([]model.Product, 0)
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, wrap("list products", err, queryMsgLimit)
	}
	return products, nil
}

func (r *productRepo) Search(ctx context.Context, query string) ([]model.Product, error) {
	products := make([]model.Product, 0)
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("product_name ILIKE ? OR sku ILIKE ?", pattern, pattern).
		Find(&products).Error
	if err != nil {
		return nil, wrap("search products", err, queryMsgLimit)
	}
	return products, nil
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return false, wrap("delete product", res.Error, queryMsgLimit)
	}
	// RowsAffected == 0 still counts as success.
	return true, nil
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&n).Error
	if err != nil {
		return 0, wrap("count products", err, queryMsgLimit)
	}
	return n, nil
}

func (r *productRepo) DB() *gorm.DB { return r.db }

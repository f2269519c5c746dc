package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
)

type OrderFilter struct {
	ListQuery
	Status         string
	PaymentStatus  string
	ShippingStatus string
	CustomerID     uint
	// From and To are both inclusive bounds on created_at.
	From *time.Time
	To   *time.Time
}

type OrderRepository interface {
	Store[domain.Order]
	List(ctx context.Context, f OrderFilter) (Page[domain.Order], error)
	CreateWithItems(ctx context.Context, order *domain.Order) error
}

type GormOrderRepository struct {
	*GormStore[domain.Order]
}

func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{GormStore: NewGormStore[domain.Order](db, "order")}
}

func (r *GormOrderRepository) List(ctx context.Context, f OrderFilter) (Page[domain.Order], error) {
	base := r.model(ctx)
	if f.Status != "" {
		base = base.Where("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		base = base.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.ShippingStatus != "" {
		base = base.Where("shipping_status = ?", f.ShippingStatus)
	}
	if f.CustomerID != 0 {
		base = base.Where("customer_id = ?", f.CustomerID)
	}
	if f.From != nil {
		base = base.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		base = base.Where("created_at <= ?", *f.To)
	}
	base = applySearch(base, f.Q,
		likeExpr("order_number"),
		"customer_id IN (SELECT id FROM customers WHERE "+likeExpr("name")+" OR "+likeExpr("email")+")",
	)
	return r.list(ctx, base, f.ListQuery, "", "Customer")
}

// FindByID loads the order with its customer and line items.
func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	err := mapError(r.db.WithContext(ctx).Preload("Customer").Preload("Items").First(&order, id).Error)
	r.record(ctx, "find_by_id", err)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateWithItems persists an order and its line items in one transaction.
func (r *GormOrderRepository) CreateWithItems(ctx context.Context, order *domain.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		if len(order.Items) == 0 {
			return nil
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
		return tx.Create(&order.Items).Error
	})
	err = mapError(err)
	r.record(ctx, "create_with_items", err)
	return err
}

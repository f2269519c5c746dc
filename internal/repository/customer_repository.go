package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
)

type CustomerRepository interface {
	Store[domain.Customer]
	HasPurchased(ctx context.Context, customerID, productID uint) (bool, error)
}

type GormCustomerRepository struct {
	*GormStore[domain.Customer]
}

func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{GormStore: NewGormStore[domain.Customer](db, "customer")}
}

// HasPurchased reports whether the customer holds a paid, non-cancelled order
// containing the product.
func (r *GormCustomerRepository) HasPurchased(ctx context.Context, customerID, productID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.customer_id = ? AND order_items.product_id = ?", customerID, productID).
		Where("orders.payment_status = ? AND orders.status <> ?", domain.PaymentStatusPaid, domain.OrderStatusCancelled).
		Count(&n).Error
	err = mapError(err)
	r.record(ctx, "has_purchased", err)
	return n > 0, err
}

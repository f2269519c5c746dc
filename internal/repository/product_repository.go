package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
)

type ProductFilter struct {
	ListQuery
	Status     string
	CategoryID uint
	MinPrice   *float64
	MaxPrice   *float64
}

type ProductRepository interface {
	Store[domain.Product]
	List(ctx context.Context, f ProductFilter) (Page[domain.Product], error)
}

type GormProductRepository struct {
	*GormStore[domain.Product]
}

func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{GormStore: NewGormStore[domain.Product](db, "product")}
}

func (r *GormProductRepository) List(ctx context.Context, f ProductFilter) (Page[domain.Product], error) {
	base := r.model(ctx)
	if f.Status != "" {
		base = base.Where("status = ?", f.Status)
	}
	if f.CategoryID != 0 {
		base = base.Where("category_id = ?", f.CategoryID)
	}
	if f.MinPrice != nil {
		base = base.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		base = base.Where("price <= ?", *f.MaxPrice)
	}
	base = applySearch(base, f.Q, likeExpr("name"), likeExpr("description"))
	return r.list(ctx, base, f.ListQuery, "")
}

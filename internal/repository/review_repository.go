package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
)

type ReviewFilter struct {
	ListQuery
	Status     string
	Rating     int
	MinRating  int
	ProductID  uint
	CustomerID uint
	Verified   *bool
}

type ReviewRepository interface {
	Store[domain.Review]
	List(ctx context.Context, f ReviewFilter) (Page[domain.Review], error)
}

type GormReviewRepository struct {
	*GormStore[domain.Review]
}

func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{GormStore: NewGormStore[domain.Review](db, "review")}
}

func (r *GormReviewRepository) List(ctx context.Context, f ReviewFilter) (Page[domain.Review], error) {
	base := r.model(ctx)
	if f.Status != "" {
		base = base.Where("status = ?", f.Status)
	}
	if f.Rating != 0 {
		base = base.Where("rating = ?", f.Rating)
	}
	if f.MinRating != 0 {
		base = base.Where("rating >= ?", f.MinRating)
	}
	if f.ProductID != 0 {
		base = base.Where("product_id = ?", f.ProductID)
	}
	if f.CustomerID != 0 {
		base = base.Where("customer_id = ?", f.CustomerID)
	}
	if f.Verified != nil {
		base = base.Where("verified_purchase = ?", *f.Verified)
	}
	base = applySearch(base, f.Q,
		likeExpr("title"),
		likeExpr("comment"),
		"customer_id IN (SELECT id FROM customers WHERE "+likeExpr("name")+")",
	)
	return r.list(ctx, base, f.ListQuery, "", "Product", "Reviewer")
}

func (r *GormReviewRepository) FindByID(ctx context.Context, id uint) (*domain.Review, error) {
	var review domain.Review
	err := mapError(r.db.WithContext(ctx).Preload("Product").Preload("Reviewer").First(&review, id).Error)
	r.record(ctx, "find_by_id", err)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

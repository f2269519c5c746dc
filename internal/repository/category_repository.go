package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
)

type CategoryRepository interface {
	Store[domain.Category]
	List(ctx context.Context, q ListQuery) (Page[domain.Category], error)
}

type GormCategoryRepository struct {
	*GormStore[domain.Category]
}

func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{GormStore: NewGormStore[domain.Category](db, "category")}
}

func (r *GormCategoryRepository) List(ctx context.Context, q ListQuery) (Page[domain.Category], error) {
	base := applySearch(r.model(ctx), q.Q, likeExpr("name"), likeExpr("description"))
	return r.list(ctx, base, q, "name asc, id asc")
}

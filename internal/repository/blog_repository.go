package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
)

type BlogFilter struct {
	ListQuery
	Status   string
	Author   string
	Featured *bool
}

// BlogReader is the read surface shared by the database and in-memory blog
// catalogs.
type BlogReader interface {
	List(ctx context.Context, f BlogFilter) (Page[domain.Blog], error)
	FindByID(ctx context.Context, id uint) (*domain.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Blog, error)
}

type BlogRepository interface {
	BlogReader
	Store[domain.Blog]
}

type GormBlogRepository struct {
	*GormStore[domain.Blog]
}

func NewBlogRepository(db *gorm.DB) *GormBlogRepository {
	return &GormBlogRepository{GormStore: NewGormStore[domain.Blog](db, "blog")}
}

func (r *GormBlogRepository) List(ctx context.Context, f BlogFilter) (Page[domain.Blog], error) {
	base := r.model(ctx)
	if f.Status != "" {
		base = base.Where("status = ?", f.Status)
	}
	if f.Author != "" {
		base = base.Where("LOWER(author) = LOWER(?)", f.Author)
	}
	if f.Featured != nil {
		base = base.Where("featured = ?", *f.Featured)
	}
	base = applySearch(base, f.Q, likeExpr("title"), likeExpr("excerpt"), likeExpr("content"), likeExpr("author"))
	return r.list(ctx, base, f.ListQuery, "")
}

func (r *GormBlogRepository) FindBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	var blog domain.Blog
	err := mapError(r.db.WithContext(ctx).Where("slug = ?", slug).First(&blog).Error)
	r.record(ctx, "find_by_slug", err)
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

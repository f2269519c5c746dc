package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
)

type PartnerFilter struct {
	ListQuery
	// Month is "YYYY-MM"; empty lists every month.
	Month    string
	Featured *bool
	Active   *bool
}

type PartnerReader interface {
	List(ctx context.Context, f PartnerFilter) (Page[domain.Partner], error)
	FindByID(ctx context.Context, id uint) (*domain.Partner, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Partner, error)
}

type PartnerRepository interface {
	PartnerReader
	Store[domain.Partner]
}

type GormPartnerRepository struct {
	*GormStore[domain.Partner]
}

func NewPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{GormStore: NewGormStore[domain.Partner](db, "partner")}
}

func (r *GormPartnerRepository) List(ctx context.Context, f PartnerFilter) (Page[domain.Partner], error) {
	base := r.model(ctx)
	if f.Month != "" {
		base = base.Where("month = ?", f.Month)
	}
	if f.Featured != nil {
		base = base.Where("featured = ?", *f.Featured)
	}
	if f.Active != nil {
		base = base.Where("active = ?", *f.Active)
	}
	base = applySearch(base, f.Q, likeExpr("name"), likeExpr("description"))
	return r.list(ctx, base, f.ListQuery, "featured desc, created_at desc, id desc")
}

func (r *GormPartnerRepository) FindBySlug(ctx context.Context, slug string) (*domain.Partner, error) {
	var partner domain.Partner
	err := mapError(r.db.WithContext(ctx).Where("slug = ?", slug).First(&partner).Error)
	r.record(ctx, "find_by_slug", err)
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

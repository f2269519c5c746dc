package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
)

type CouponFilter struct {
	ListQuery
	Active *bool
}

// CouponUsageTotals aggregates every redemption of one coupon.
type CouponUsageTotals struct {
	TotalUses     int64
	TotalDiscount float64
}

type CouponRepository interface {
	Store[domain.Coupon]
	List(ctx context.Context, f CouponFilter) (Page[domain.Coupon], error)
	ListUsage(ctx context.Context, couponID uint, q ListQuery) (Page[domain.CouponUsage], error)
	UsageTotals(ctx context.Context, couponID uint) (CouponUsageTotals, error)
	RecordUsage(ctx context.Context, usage *domain.CouponUsage) error
}

type GormCouponRepository struct {
	*GormStore[domain.Coupon]
	usage *GormStore[domain.CouponUsage]
}

func NewCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{
		GormStore: NewGormStore[domain.Coupon](db, "coupon"),
		usage:     NewGormStore[domain.CouponUsage](db, "coupon_usage"),
	}
}

func (r *GormCouponRepository) List(ctx context.Context, f CouponFilter) (Page[domain.Coupon], error) {
	base := r.model(ctx)
	if f.Active != nil {
		base = base.Where("active = ?", *f.Active)
	}
	base = applySearch(base, f.Q, likeExpr("code"), likeExpr("description"))
	return r.list(ctx, base, f.ListQuery, "")
}

func (r *GormCouponRepository) ListUsage(ctx context.Context, couponID uint, q ListQuery) (Page[domain.CouponUsage], error) {
	base := r.usage.model(ctx).Where("coupon_id = ?", couponID)
	return r.usage.list(ctx, base, q, "used_at desc, id desc")
}

func (r *GormCouponRepository) UsageTotals(ctx context.Context, couponID uint) (CouponUsageTotals, error) {
	var totals CouponUsageTotals
	err := r.usage.model(ctx).
		Select("COUNT(*) AS total_uses, COALESCE(SUM(discount_amount), 0) AS total_discount").
		Where("coupon_id = ?", couponID).
		Scan(&totals).Error
	err = mapError(err)
	r.usage.record(ctx, "totals", err)
	return totals, err
}

func (r *GormCouponRepository) RecordUsage(ctx context.Context, usage *domain.CouponUsage) error {
	return r.usage.Create(ctx, usage)
}

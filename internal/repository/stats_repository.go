package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/observability"
)

// StatsRepository answers the aggregate questions behind the admin
// dashboard. Each method is a single query so callers may run them
// concurrently.
type StatsRepository interface {
	CountOrders(ctx context.Context, status string) (int64, error)
	PaidRevenue(ctx context.Context) (float64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	CountBlogs(ctx context.Context, status string) (int64, error)
	CountReviews(ctx context.Context, status string) (int64, error)
	AverageRating(ctx context.Context, status string) (float64, error)
	CountActiveCoupons(ctx context.Context) (int64, error)
}

type GormStatsRepository struct{ db *gorm.DB }

func NewStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

func (r *GormStatsRepository) CountOrders(ctx context.Context, status string) (int64, error) {
	return r.count(ctx, &domain.Order{}, "status", status)
}

func (r *GormStatsRepository) PaidRevenue(ctx context.Context) (float64, error) {
	return r.aggregate(ctx, &domain.Order{}, "COALESCE(SUM(total), 0)", "payment_status = ?", domain.PaymentStatusPaid)
}

func (r *GormStatsRepository) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, &domain.Product{}, "", "")
}

func (r *GormStatsRepository) CountCustomers(ctx context.Context) (int64, error) {
	return r.count(ctx, &domain.Customer{}, "", "")
}

func (r *GormStatsRepository) CountBlogs(ctx context.Context, status string) (int64, error) {
	return r.count(ctx, &domain.Blog{}, "status", status)
}

func (r *GormStatsRepository) CountReviews(ctx context.Context, status string) (int64, error) {
	return r.count(ctx, &domain.Review{}, "status", status)
}

func (r *GormStatsRepository) AverageRating(ctx context.Context, status string) (float64, error) {
	return r.aggregate(ctx, &domain.Review{}, "COALESCE(AVG(rating), 0)", "status = ?", status)
}

func (r *GormStatsRepository) CountActiveCoupons(ctx context.Context) (int64, error) {
	return r.count(ctx, &domain.Coupon{}, "active", true)
}

// count applies an equality filter on column when value is not its zero
// value.
func (r *GormStatsRepository) count(ctx context.Context, model any, column string, value any) (int64, error) {
	q := r.db.WithContext(ctx).Model(model)
	if column != "" && value != "" {
		q = q.Where(column+" = ?", value)
	}
	var n int64
	err := mapError(q.Count(&n).Error)
	observability.RecordRepositoryOperation(ctx, "stats", "count", outcomeOf(err))
	return n, err
}

func (r *GormStatsRepository) aggregate(ctx context.Context, model any, expr, where string, args ...any) (float64, error) {
	var v float64
	err := mapError(r.db.WithContext(ctx).Model(model).Select(expr).Where(where, args...).Row().Scan(&v))
	observability.RecordRepositoryOperation(ctx, "stats", "aggregate", outcomeOf(err))
	return v, err
}

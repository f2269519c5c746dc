package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/observability"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
)

type DashboardStats struct {
	TotalOrders    int64   `json:"total_orders"`
	TotalRevenue   float64 `json:"total_revenue"`
	PendingOrders  int64   `json:"pending_orders"`
	TotalProducts  int64   `json:"total_products"`
	TotalCustomers int64   `json:"total_customers"`
	PublishedBlogs int64   `json:"published_blogs"`
	PendingReviews int64   `json:"pending_reviews"`
	AverageRating  float64 `json:"average_rating"`
	ActiveCoupons  int64   `json:"active_coupons"`
}

const dashboardStatsCacheKey = "dashboard:stats"

type DashboardServiceImpl struct {
	stats    repository.StatsRepository
	cache    StatsCache
	cacheTTL time.Duration
}

// NewDashboardService caches computed stats for cacheTTL; a zero TTL
// computes them on every call.
func NewDashboardService(stats repository.StatsRepository, cache StatsCache, cacheTTL time.Duration) *DashboardServiceImpl {
	if cache == nil {
		cache = NewNoopStatsCache()
	}
	return &DashboardServiceImpl{stats: stats, cache: cache, cacheTTL: cacheTTL}
}

func (s *DashboardServiceImpl) Stats(ctx context.Context) (DashboardStats, error) {
	if s.cacheTTL > 0 {
		if raw, ok, err := s.cache.Get(ctx, dashboardStatsCacheKey); err != nil {
			slog.WarnContext(ctx, "dashboard stats cache read failed", "error", err)
		} else if ok {
			var cached DashboardStats
			if err := json.Unmarshal(raw, &cached); err == nil {
				observability.RecordQuery(ctx, "dashboard", "stats", "cache_hit", 0)
				return cached, nil
			}
		}
	}
	out, err := s.compute(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	if s.cacheTTL > 0 {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, dashboardStatsCacheKey, raw, s.cacheTTL); err != nil {
				slog.WarnContext(ctx, "dashboard stats cache write failed", "error", err)
			}
		}
	}
	return out, nil
}

// compute runs every aggregate concurrently; any failure fails the whole
// response.
func (s *DashboardServiceImpl) compute(ctx context.Context) (DashboardStats, error) {
	start := time.Now()
	var out DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int64, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			*dst = n
			return err
		})
	}
	sum := func(dst *float64, fn func(context.Context) (float64, error)) {
		g.Go(func() error {
			v, err := fn(gctx)
			*dst = v
			return err
		})
	}

	count(&out.TotalOrders, func(ctx context.Context) (int64, error) { return s.stats.CountOrders(ctx, "") })
	count(&out.PendingOrders, func(ctx context.Context) (int64, error) {
		return s.stats.CountOrders(ctx, domain.OrderStatusPending)
	})
	sum(&out.TotalRevenue, s.stats.PaidRevenue)
	count(&out.TotalProducts, s.stats.CountProducts)
	count(&out.TotalCustomers, s.stats.CountCustomers)
	count(&out.PublishedBlogs, func(ctx context.Context) (int64, error) {
		return s.stats.CountBlogs(ctx, domain.BlogStatusPublished)
	})
	count(&out.PendingReviews, func(ctx context.Context) (int64, error) {
		return s.stats.CountReviews(ctx, domain.ReviewStatusPending)
	})
	sum(&out.AverageRating, func(ctx context.Context) (float64, error) {
		return s.stats.AverageRating(ctx, domain.ReviewStatusApproved)
	})
	count(&out.ActiveCoupons, s.stats.CountActiveCoupons)

	err := g.Wait()
	observability.RecordQuery(ctx, "dashboard", "stats", queryOutcome(err), time.Since(start))
	if err != nil {
		return DashboardStats{}, err
	}
	return out, nil
}

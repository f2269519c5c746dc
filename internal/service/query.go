package service

import (
	"context"
	"time"

	"github.com/sandeepkv93/storefront-admin-api/internal/observability"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
)

// observeList runs one list query and records its outcome, latency and
// requested page size.
func observeList[T any](ctx context.Context, resource string, q repository.ListQuery, fn func() (repository.Page[T], error)) (repository.Page[T], error) {
	start := time.Now()
	page, err := fn()
	observability.RecordQuery(ctx, resource, "list", queryOutcome(err), time.Since(start))
	observability.RecordQueryPageSize(ctx, resource, q.Limit)
	return page, err
}

func observeGet[T any](ctx context.Context, resource, op string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	observability.RecordQuery(ctx, resource, op, queryOutcome(err), time.Since(start))
	return v, err
}

func queryOutcome(err error) string {
	if err == nil {
		return "success"
	}
	return mutationOutcome(err)
}

// mapPage converts every item of a page while keeping its window and total.
func mapPage[T, V any](in repository.Page[T], fn func(T) V) repository.Page[V] {
	out := repository.Page[V]{Items: make([]V, 0, len(in.Items)), Total: in.Total, Limit: in.Limit, Offset: in.Offset}
	for _, item := range in.Items {
		out.Items = append(out.Items, fn(item))
	}
	return out
}

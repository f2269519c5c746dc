package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
)

func TestMemoryBlogStoreMatchesListContract(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	store := NewMemoryBlogStore(FixtureBlogs(now))

	all, err := store.List(t.Context(), BlogFilter{ListQuery: ListQuery{Limit: 1}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all.Total != 3 || len(all.Items) != 1 || !all.HasMore() {
		t.Fatalf("unexpected page %+v", all)
	}
	if all.Items[0].Slug != "spring-collection-preview" {
		t.Fatalf("expected newest first, got %s", all.Items[0].Slug)
	}

	published, err := store.List(t.Context(), BlogFilter{ListQuery: ListQuery{Q: "LEATHER", Limit: 10}, Status: domain.BlogStatusPublished})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if published.Total != 1 || published.Items[0].Author != "Maya Ortiz" {
		t.Fatalf("unexpected search result %+v", published)
	}

	countOnly, _ := store.List(t.Context(), BlogFilter{ListQuery: ListQuery{Limit: 0}})
	if countOnly.Total != 3 || len(countOnly.Items) != 0 {
		t.Fatalf("expected count-only page, got %+v", countOnly)
	}

	if _, err := store.FindBySlug(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryPartnerStoreFiltersByMonth(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	store := NewMemoryPartnerStore(FixturePartners(now))

	page, err := store.List(t.Context(), PartnerFilter{ListQuery: ListQuery{Limit: 10}, Month: "2026-03", Active: boolPtr(true)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 2 || !page.Items[0].Featured {
		t.Fatalf("expected featured partner first, got %+v", page.Items)
	}
	other, _ := store.List(t.Context(), PartnerFilter{ListQuery: ListQuery{Limit: 10}, Month: "2026-02"})
	if other.Total != 0 {
		t.Fatalf("expected no partners for another month, got %d", other.Total)
	}
	p, err := store.FindByID(t.Context(), 2)
	if err != nil || p.Slug != "harbor-ceramics" {
		t.Fatalf("find by id: %+v err=%v", p, err)
	}
}

func TestMonthlyPartnerStoreFollowsClockAcrossMonths(t *testing.T) {
	now := time.Date(2026, 4, 30, 23, 30, 0, 0, time.UTC)
	store := NewMonthlyPartnerStore(func() time.Time { return now })

	april, err := store.List(t.Context(), PartnerFilter{ListQuery: ListQuery{Limit: 10}, Month: "2026-04"})
	if err != nil || april.Total != 2 {
		t.Fatalf("expected april partners, got %+v err=%v", april, err)
	}

	now = now.Add(time.Hour)
	may, err := store.List(t.Context(), PartnerFilter{ListQuery: ListQuery{Limit: 10}, Month: "2026-05"})
	if err != nil || may.Total != 2 {
		t.Fatalf("expected partners to roll over into may, got %+v err=%v", may, err)
	}
	stale, _ := store.List(t.Context(), PartnerFilter{ListQuery: ListQuery{Limit: 10}, Month: "2026-04"})
	if stale.Total != 0 {
		t.Fatalf("expected april set replaced, got %d", stale.Total)
	}

	p, err := store.FindBySlug(t.Context(), "northwind-leather")
	if err != nil || p.Month != "2026-05" {
		t.Fatalf("find by slug: %+v err=%v", p, err)
	}
	if _, err := store.FindBySlug(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`50%_off\`); got != `50\%\_off\\` {
		t.Fatalf("unexpected escape %q", got)
	}
}

package service

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
)

func TestBlogServicePublicReadsOnlyPublished(t *testing.T) {
	db := newServiceDBForTest(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := NewBlogService(repository.NewBlogRepository(db), repository.NewMemoryBlogStore(repository.FixtureBlogs(now)))

	page, err := svc.ListPublished(t.Context(), repository.BlogFilter{ListQuery: repository.ListQuery{Limit: 10}, Status: domain.BlogStatusDraft})
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 published fixture blogs, got %d", page.Total)
	}
	for _, b := range page.Items {
		if b.Status != domain.BlogStatusPublished {
			t.Fatalf("draft leaked to public list: %+v", b)
		}
	}
	if _, err := svc.GetPublishedBySlug(t.Context(), "spring-collection-preview"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected draft to be hidden, got %v", err)
	}
	if b, err := svc.GetPublishedBySlug(t.Context(), "welcome-to-the-store"); err != nil || b.ID != 1 {
		t.Fatalf("expected published blog, got %+v err=%v", b, err)
	}

	admin, err := svc.List(t.Context(), repository.BlogFilter{ListQuery: repository.ListQuery{Limit: 10}})
	if err != nil || admin.Total != 0 {
		t.Fatalf("expected admin reads from the database, got total=%d err=%v", admin.Total, err)
	}
}

func TestPartnerServiceDefaultsToCurrentMonth(t *testing.T) {
	db := newServiceDBForTest(t)
	svc := NewPartnerService(repository.NewPartnerRepository(db), nil)
	fixed := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	svc.Mutator.rules = partnerRules(svc.now)

	for _, body := range []string{
		`{"name":"April Partner","active":true}`,
		`{"name":"March Partner","month":"2026-03","active":true}`,
		`{"name":"Dormant Partner","active":false}`,
	} {
		if _, err := svc.Create(t.Context(), adminForTest, payloadForTest(t, body)); err != nil {
			t.Fatalf("create partner %s: %v", body, err)
		}
	}

	admin, err := svc.PartnersOfMonth(t.Context(), repository.PartnerFilter{ListQuery: repository.ListQuery{Limit: 10}})
	if err != nil {
		t.Fatalf("partners of month: %v", err)
	}
	if admin.Total != 2 {
		t.Fatalf("expected 2 April partners for admins, got %d", admin.Total)
	}
	public, err := svc.PublicPartnersOfMonth(t.Context(), repository.PartnerFilter{ListQuery: repository.ListQuery{Limit: 10}})
	if err != nil {
		t.Fatalf("public partners: %v", err)
	}
	if public.Total != 1 || public.Items[0].Name != "April Partner" {
		t.Fatalf("expected only active April partner, got %+v", public.Items)
	}
	if _, err := svc.Create(t.Context(), adminForTest, payloadForTest(t, `{"name":"Bad","month":"2026-13"}`)); err == nil {
		t.Fatal("expected invalid month to be rejected")
	}
}

func TestPartnerServiceGetActiveBySlugHidesInactive(t *testing.T) {
	db := newServiceDBForTest(t)
	store := repository.NewMemoryPartnerStore([]domain.Partner{
		{Base: domain.Base{ID: 1}, Name: "Harbor", Slug: "harbor", Month: "2026-03", Active: true},
		{Base: domain.Base{ID: 2}, Name: "Retired", Slug: "retired", Month: "2026-03"},
	})
	svc := NewPartnerService(repository.NewPartnerRepository(db), store)

	p, err := svc.GetActiveBySlug(t.Context(), "harbor")
	if err != nil || p.ID != 1 {
		t.Fatalf("expected active partner, got %+v err=%v", p, err)
	}
	if _, err := svc.GetActiveBySlug(t.Context(), "retired"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected inactive partner to be hidden, got %v", err)
	}
	if _, err := svc.GetActiveBySlug(t.Context(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

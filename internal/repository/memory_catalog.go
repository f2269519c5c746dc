package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
)

// MemoryBlogStore serves blogs from a fixed slice with the same filter,
// total and window semantics as the database reader. The slice is never
// mutated after construction.
type MemoryBlogStore struct {
	blogs []domain.Blog
}

func NewMemoryBlogStore(blogs []domain.Blog) *MemoryBlogStore {
	s := &MemoryBlogStore{blogs: append([]domain.Blog(nil), blogs...)}
	sort.SliceStable(s.blogs, func(i, j int) bool {
		return newerFirst(s.blogs[i].Base, s.blogs[j].Base)
	})
	return s
}

func (s *MemoryBlogStore) List(_ context.Context, f BlogFilter) (Page[domain.Blog], error) {
	matched := make([]domain.Blog, 0, len(s.blogs))
	for _, b := range s.blogs {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.Author != "" && !strings.EqualFold(b.Author, f.Author) {
			continue
		}
		if f.Featured != nil && b.Featured != *f.Featured {
			continue
		}
		if !containsFold(f.Q, b.Title, b.Excerpt, b.Content, b.Author) {
			continue
		}
		matched = append(matched, b)
	}
	return windowSlice(matched, f.ListQuery), nil
}

func (s *MemoryBlogStore) FindByID(_ context.Context, id uint) (*domain.Blog, error) {
	for _, b := range s.blogs {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryBlogStore) FindBySlug(_ context.Context, slug string) (*domain.Blog, error) {
	for _, b := range s.blogs {
		if b.Slug == slug {
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

// MemoryPartnerStore serves partners from memory. A store built with a clock
// regenerates the fixture set whenever the clock enters a new month.
type MemoryPartnerStore struct {
	clock func() time.Time

	mu       sync.Mutex
	month    string
	partners []domain.Partner
}

func NewMemoryPartnerStore(partners []domain.Partner) *MemoryPartnerStore {
	return &MemoryPartnerStore{partners: sortPartners(partners)}
}

// NewMonthlyPartnerStore serves FixturePartners for the month the clock is
// currently in.
func NewMonthlyPartnerStore(clock func() time.Time) *MemoryPartnerStore {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryPartnerStore{clock: clock}
}

func sortPartners(partners []domain.Partner) []domain.Partner {
	out := append([]domain.Partner(nil), partners...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		return newerFirst(a.Base, b.Base)
	})
	return out
}

// snapshot returns the current partner set. The returned slice is replaced,
// never mutated, so callers may read it without the lock.
func (s *MemoryPartnerStore) snapshot() []domain.Partner {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clock == nil {
		return s.partners
	}
	now := s.clock().UTC()
	if month := now.Format("2006-01"); month != s.month {
		s.partners = sortPartners(FixturePartners(now))
		s.month = month
	}
	return s.partners
}

func (s *MemoryPartnerStore) List(_ context.Context, f PartnerFilter) (Page[domain.Partner], error) {
	partners := s.snapshot()
	matched := make([]domain.Partner, 0, len(partners))
	for _, p := range partners {
		if f.Month != "" && p.Month != f.Month {
			continue
		}
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		if f.Active != nil && p.Active != *f.Active {
			continue
		}
		if !containsFold(f.Q, p.Name, p.Description) {
			continue
		}
		matched = append(matched, p)
	}
	return windowSlice(matched, f.ListQuery), nil
}

func (s *MemoryPartnerStore) FindByID(_ context.Context, id uint) (*domain.Partner, error) {
	for _, p := range s.snapshot() {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryPartnerStore) FindBySlug(_ context.Context, slug string) (*domain.Partner, error) {
	for _, p := range s.snapshot() {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func newerFirst(a, b domain.Base) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// FixtureBlogs returns the sample blogs served by the in-memory catalog.
func FixtureBlogs(now time.Time) []domain.Blog {
	published := now.Add(-48 * time.Hour)
	return []domain.Blog{
		{
			Base:        domain.Base{ID: 1, CreatedAt: now.Add(-72 * time.Hour), UpdatedAt: now.Add(-72 * time.Hour)},
			Title:       "Welcome to the store",
			Slug:        "welcome-to-the-store",
			Excerpt:     "What we sell and why.",
			Content:     "A short tour of the catalog and the people behind it.",
			Author:      "Store Team",
			Status:      domain.BlogStatusPublished,
			Featured:    true,
			PublishedAt: &published,
		},
		{
			Base:        domain.Base{ID: 2, CreatedAt: now.Add(-24 * time.Hour), UpdatedAt: now.Add(-24 * time.Hour)},
			Title:       "Care guide for leather goods",
			Slug:        "care-guide-for-leather-goods",
			Excerpt:     "Keep bags and belts looking new.",
			Content:     "Condition twice a year and store away from direct sunlight.",
			Author:      "Maya Ortiz",
			Status:      domain.BlogStatusPublished,
			PublishedAt: &published,
		},
		{
			Base:    domain.Base{ID: 3, CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour)},
			Title:   "Spring collection preview",
			Slug:    "spring-collection-preview",
			Excerpt: "A first look at what is coming.",
			Content: "Drafted for review.",
			Author:  "Store Team",
			Status:  domain.BlogStatusDraft,
		},
	}
}

// FixturePartners returns sample partners for the month containing now.
func FixturePartners(now time.Time) []domain.Partner {
	month := now.UTC().Format("2006-01")
	return []domain.Partner{
		{
			Base:        domain.Base{ID: 1, CreatedAt: now.Add(-48 * time.Hour)},
			Name:        "Northwind Leather",
			Slug:        "northwind-leather",
			Description: "Family tannery supplying our bag line.",
			Website:     "https://northwind.example",
			Month:       month,
			Featured:    true,
			Active:      true,
		},
		{
			Base:        domain.Base{ID: 2, CreatedAt: now.Add(-24 * time.Hour)},
			Name:        "Harbor Ceramics",
			Slug:        "harbor-ceramics",
			Description: "Small-batch tableware studio.",
			Website:     "https://harbor.example",
			Month:       month,
			Active:      true,
		},
	}
}

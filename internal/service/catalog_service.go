package service

import (
	"context"
	"time"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
)

type BlogServiceImpl struct {
	*Mutator[domain.Blog, *domain.Blog]
	repo   repository.BlogRepository
	public repository.BlogReader
}

// NewBlogService serves admin reads and writes from repo and public reads
// from public, which may be the in-memory catalog.
func NewBlogService(repo repository.BlogRepository, public repository.BlogReader) *BlogServiceImpl {
	if public == nil {
		public = repo
	}
	return &BlogServiceImpl{
		Mutator: NewMutator[domain.Blog](repo, "blog", blogRules),
		repo:    repo,
		public:  public,
	}
}

func (s *BlogServiceImpl) List(ctx context.Context, f repository.BlogFilter) (repository.Page[domain.Blog], error) {
	return observeList(ctx, "blog", f.ListQuery, func() (repository.Page[domain.Blog], error) {
		return s.repo.List(ctx, f)
	})
}

func (s *BlogServiceImpl) Get(ctx context.Context, id uint) (*domain.Blog, error) {
	return observeGet(ctx, "blog", "get", func() (*domain.Blog, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// ListPublished lists published blogs only, whatever status the caller asked
// for.
func (s *BlogServiceImpl) ListPublished(ctx context.Context, f repository.BlogFilter) (repository.Page[domain.Blog], error) {
	f.Status = domain.BlogStatusPublished
	return observeList(ctx, "public_blog", f.ListQuery, func() (repository.Page[domain.Blog], error) {
		return s.public.List(ctx, f)
	})
}

func (s *BlogServiceImpl) GetPublishedBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	return observeGet(ctx, "public_blog", "get_by_slug", func() (*domain.Blog, error) {
		b, err := s.public.FindBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if b.Status != domain.BlogStatusPublished {
			return nil, repository.ErrNotFound
		}
		return b, nil
	})
}

type CategoryServiceImpl struct {
	*Mutator[domain.Category, *domain.Category]
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) *CategoryServiceImpl {
	return &CategoryServiceImpl{
		Mutator: NewMutator[domain.Category](repo, "category", categoryRules),
		repo:    repo,
	}
}

func (s *CategoryServiceImpl) List(ctx context.Context, q repository.ListQuery) (repository.Page[domain.Category], error) {
	return observeList(ctx, "category", q, func() (repository.Page[domain.Category], error) {
		return s.repo.List(ctx, q)
	})
}

func (s *CategoryServiceImpl) Get(ctx context.Context, id uint) (*domain.Category, error) {
	return observeGet(ctx, "category", "get", func() (*domain.Category, error) {
		return s.repo.FindByID(ctx, id)
	})
}

type ProductServiceImpl struct {
	*Mutator[domain.Product, *domain.Product]
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductServiceImpl {
	return &ProductServiceImpl{
		Mutator: NewMutator[domain.Product](repo, "product", productRules),
		repo:    repo,
	}
}

func (s *ProductServiceImpl) List(ctx context.Context, f repository.ProductFilter) (repository.Page[domain.Product], error) {
	return observeList(ctx, "product", f.ListQuery, func() (repository.Page[domain.Product], error) {
		return s.repo.List(ctx, f)
	})
}

func (s *ProductServiceImpl) Get(ctx context.Context, id uint) (*domain.Product, error) {
	return observeGet(ctx, "product", "get", func() (*domain.Product, error) {
		return s.repo.FindByID(ctx, id)
	})
}

type PartnerServiceImpl struct {
	*Mutator[domain.Partner, *domain.Partner]
	repo   repository.PartnerRepository
	public repository.PartnerReader
	now    func() time.Time
}

func NewPartnerService(repo repository.PartnerRepository, public repository.PartnerReader) *PartnerServiceImpl {
	if public == nil {
		public = repo
	}
	return &PartnerServiceImpl{
		Mutator: NewMutator[domain.Partner](repo, "partner", partnerRules(time.Now)),
		repo:    repo,
		public:  public,
		now:     time.Now,
	}
}

func (s *PartnerServiceImpl) List(ctx context.Context, f repository.PartnerFilter) (repository.Page[domain.Partner], error) {
	return observeList(ctx, "partner", f.ListQuery, func() (repository.Page[domain.Partner], error) {
		return s.repo.List(ctx, f)
	})
}

func (s *PartnerServiceImpl) Get(ctx context.Context, id uint) (*domain.Partner, error) {
	return observeGet(ctx, "partner", "get", func() (*domain.Partner, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// PartnersOfMonth lists partners for f.Month, defaulting to the current UTC
// month.
func (s *PartnerServiceImpl) PartnersOfMonth(ctx context.Context, f repository.PartnerFilter) (repository.Page[domain.Partner], error) {
	if f.Month == "" {
		f.Month = CurrentMonth(s.now())
	}
	return observeList(ctx, "partner_month", f.ListQuery, func() (repository.Page[domain.Partner], error) {
		return s.repo.List(ctx, f)
	})
}

// PublicPartnersOfMonth serves active partners only, from the public
// catalog source.
func (s *PartnerServiceImpl) PublicPartnersOfMonth(ctx context.Context, f repository.PartnerFilter) (repository.Page[domain.Partner], error) {
	if f.Month == "" {
		f.Month = CurrentMonth(s.now())
	}
	active := true
	f.Active = &active
	return observeList(ctx, "public_partner_month", f.ListQuery, func() (repository.Page[domain.Partner], error) {
		return s.public.List(ctx, f)
	})
}

func (s *PartnerServiceImpl) GetActive(ctx context.Context, id uint) (*domain.Partner, error) {
	return observeGet(ctx, "public_partner", "get", func() (*domain.Partner, error) {
		return activeOnly(s.public.FindByID(ctx, id))
	})
}

func (s *PartnerServiceImpl) GetActiveBySlug(ctx context.Context, slug string) (*domain.Partner, error) {
	return observeGet(ctx, "public_partner", "get_by_slug", func() (*domain.Partner, error) {
		return activeOnly(s.public.FindBySlug(ctx, slug))
	})
}

// activeOnly hides inactive partners from public callers.
func activeOnly(p *domain.Partner, err error) (*domain.Partner, error) {
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

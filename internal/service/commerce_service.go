package service

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/observability"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
)

type OrderServiceImpl struct {
	mutator *Mutator[domain.Order, *domain.Order]
	repo    repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) *OrderServiceImpl {
	return &OrderServiceImpl{
		mutator: NewMutator[domain.Order](repo, "order", orderRules),
		repo:    repo,
	}
}

func (s *OrderServiceImpl) List(ctx context.Context, f repository.OrderFilter) (repository.Page[OrderView], error) {
	page, err := observeList(ctx, "order", f.ListQuery, func() (repository.Page[domain.Order], error) {
		return s.repo.List(ctx, f)
	})
	if err != nil {
		return repository.Page[OrderView]{}, err
	}
	return mapPage(page, NewOrderView), nil
}

func (s *OrderServiceImpl) Get(ctx context.Context, id uint) (*OrderView, error) {
	o, err := observeGet(ctx, "order", "get", func() (*domain.Order, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	v := NewOrderView(*o)
	return &v, nil
}

// Update changes order workflow fields. Line items are not writable
// through the payload.
func (s *OrderServiceImpl) Update(ctx context.Context, actor domain.Identity, id uint, payload Payload) (*OrderView, error) {
	if _, err := s.mutator.Update(ctx, actor, id, payload); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

type ReviewServiceImpl struct {
	mutator   *Mutator[domain.Review, *domain.Review]
	repo      repository.ReviewRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
}

func NewReviewService(repo repository.ReviewRepository, products repository.ProductRepository, customers repository.CustomerRepository) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		mutator:   NewMutator[domain.Review](repo, "review", reviewRules),
		repo:      repo,
		products:  products,
		customers: customers,
	}
}

func (s *ReviewServiceImpl) List(ctx context.Context, f repository.ReviewFilter) (repository.Page[ReviewView], error) {
	page, err := observeList(ctx, "review", f.ListQuery, func() (repository.Page[domain.Review], error) {
		return s.repo.List(ctx, f)
	})
	if err != nil {
		return repository.Page[ReviewView]{}, err
	}
	return mapPage(page, NewReviewView), nil
}

func (s *ReviewServiceImpl) Get(ctx context.Context, id uint) (*ReviewView, error) {
	r, err := observeGet(ctx, "review", "get", func() (*domain.Review, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	v := NewReviewView(*r)
	return &v, nil
}

// Update moderates a review and answers with its product and reviewer
// summaries, the same shape Get returns.
func (s *ReviewServiceImpl) Update(ctx context.Context, actor domain.Identity, id uint, payload Payload) (*ReviewView, error) {
	if _, err := s.mutator.Update(ctx, actor, id, payload); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ReviewServiceImpl) Delete(ctx context.Context, actor domain.Identity, id uint) error {
	return s.mutator.Delete(ctx, actor, id)
}

// ProductReviews lists the reviews of one product. Public callers only ever
// see approved reviews.
func (s *ReviewServiceImpl) ProductReviews(ctx context.Context, productID uint, f repository.ReviewFilter, public bool) (repository.Page[ReviewView], error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return repository.Page[ReviewView]{}, err
	}
	f.ProductID = productID
	if public {
		f.Status = domain.ReviewStatusApproved
	}
	page, err := observeList(ctx, "product_review", f.ListQuery, func() (repository.Page[domain.Review], error) {
		return s.repo.List(ctx, f)
	})
	if err != nil {
		return repository.Page[ReviewView]{}, err
	}
	return mapPage(page, NewReviewView), nil
}

type SubmitReviewInput struct {
	CustomerID uint   `json:"customer_id"`
	Rating     int    `json:"rating"`
	Title      string `json:"title"`
	Comment    string `json:"comment"`
}

func (in SubmitReviewInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.CustomerID, validation.Required.Error("Customer is required")),
		validation.Field(&in.Rating, validation.Required.Error("Rating must be between 1 and 5"), validation.Min(1).Error("Rating must be between 1 and 5"), validation.Max(5).Error("Rating must be between 1 and 5")),
		validation.Field(&in.Title, validation.Length(0, 200)),
	)
}

// Submit records a customer review as pending moderation. The verified flag
// reflects whether the customer has a paid order for the product.
func (s *ReviewServiceImpl) Submit(ctx context.Context, productID uint, in SubmitReviewInput) (_ *ReviewView, err error) {
	defer func() { observability.RecordMutation(ctx, "review", "submit", mutationOutcome(err)) }()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	verified, err := s.customers.HasPurchased(ctx, in.CustomerID, productID)
	if err != nil {
		return nil, err
	}
	review := &domain.Review{
		ProductID:        productID,
		CustomerID:       in.CustomerID,
		Rating:           in.Rating,
		Title:            in.Title,
		Comment:          in.Comment,
		Status:           domain.ReviewStatusPending,
		VerifiedPurchase: verified,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	created, err := s.repo.FindByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	v := NewReviewView(*created)
	return &v, nil
}

type CouponUsageReport struct {
	Coupon        domain.Coupon        `json:"coupon"`
	TotalUses     int64                `json:"total_uses"`
	TotalDiscount float64              `json:"total_discount"`
	Usages        []domain.CouponUsage `json:"usages"`
	Total         int64                `json:"-"`
	Limit         int                  `json:"-"`
	Offset        int                  `json:"-"`
}

type CouponServiceImpl struct {
	*Mutator[domain.Coupon, *domain.Coupon]
	repo repository.CouponRepository
}

func NewCouponService(repo repository.CouponRepository) *CouponServiceImpl {
	return &CouponServiceImpl{
		Mutator: NewMutator[domain.Coupon](repo, "coupon", couponRules),
		repo:    repo,
	}
}

func (s *CouponServiceImpl) List(ctx context.Context, f repository.CouponFilter) (repository.Page[domain.Coupon], error) {
	return observeList(ctx, "coupon", f.ListQuery, func() (repository.Page[domain.Coupon], error) {
		return s.repo.List(ctx, f)
	})
}

func (s *CouponServiceImpl) Get(ctx context.Context, id uint) (*domain.Coupon, error) {
	return observeGet(ctx, "coupon", "get", func() (*domain.Coupon, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// Usage reports the redemption totals of a coupon together with one window
// of its individual usages.
func (s *CouponServiceImpl) Usage(ctx context.Context, id uint, q repository.ListQuery) (*CouponUsageReport, error) {
	return observeGet(ctx, "coupon_usage", "get", func() (*CouponUsageReport, error) {
		coupon, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		totals, err := s.repo.UsageTotals(ctx, id)
		if err != nil {
			return nil, err
		}
		page, err := s.repo.ListUsage(ctx, id, q)
		if err != nil {
			return nil, err
		}
		return &CouponUsageReport{
			Coupon:        *coupon,
			TotalUses:     totals.TotalUses,
			TotalDiscount: totals.TotalDiscount,
			Usages:        page.Items,
			Total:         page.Total,
			Limit:         page.Limit,
			Offset:        page.Offset,
		}, nil
	})
}

type PurchaseCheck struct {
	CustomerID uint `json:"customer_id"`
	ProductID  uint `json:"product_id"`
	Purchased  bool `json:"purchased"`
}

type CustomerServiceImpl struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) *CustomerServiceImpl {
	return &CustomerServiceImpl{repo: repo}
}

// CheckPurchase reports whether the customer bought the product. Unknown
// customers and products simply have no purchases.
func (s *CustomerServiceImpl) CheckPurchase(ctx context.Context, customerID, productID uint) (PurchaseCheck, error) {
	return observeGet(ctx, "customer", "check_purchase", func() (PurchaseCheck, error) {
		ok, err := s.repo.HasPurchased(ctx, customerID, productID)
		if err != nil {
			return PurchaseCheck{}, err
		}
		return PurchaseCheck{CustomerID: customerID, ProductID: productID, Purchased: ok}, nil
	})
}

package service

import (
	"context"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
)

//go:generate mockgen -source=interfaces.go -destination=gomock/interfaces_mock.go -package=gomock

type AuthService interface {
	Login(ctx context.Context, email, password, ip string) (*LoginResult, error)
	Me(ctx context.Context, identity domain.Identity) (*domain.AdminUser, error)
}

type BlogService interface {
	List(ctx context.Context, f repository.BlogFilter) (repository.Page[domain.Blog], error)
	Get(ctx context.Context, id uint) (*domain.Blog, error)
	ListPublished(ctx context.Context, f repository.BlogFilter) (repository.Page[domain.Blog], error)
	GetPublishedBySlug(ctx context.Context, slug string) (*domain.Blog, error)
	Create(ctx context.Context, actor domain.Identity, payload Payload) (*domain.Blog, error)
	Update(ctx context.Context, actor domain.Identity, id uint, payload Payload) (*domain.Blog, error)
	Delete(ctx context.Context, actor domain.Identity, id uint) error
}

type CategoryService interface {
	List(ctx context.Context, q repository.ListQuery) (repository.Page[domain.Category], error)
	Get(ctx context.Context, id uint) (*domain.Category, error)
	Create(ctx context.Context, actor domain.Identity, payload Payload) (*domain.Category, error)
	Update(ctx context.Context, actor domain.Identity, id uint, payload Payload) (*domain.Category, error)
	Delete(ctx context.Context, actor domain.Identity, id uint) error
}

type ProductService interface {
	List(ctx context.Context, f repository.ProductFilter) (repository.Page[domain.Product], error)
	Get(ctx context.Context, id uint) (*domain.Product, error)
	Create(ctx context.Context, actor domain.Identity, payload Payload) (*domain.Product, error)
	Update(ctx context.Context, actor domain.Identity, id uint, payload Payload) (*domain.Product, error)
	Delete(ctx context.Context, actor domain.Identity, id uint) error
}

type PartnerService interface {
	List(ctx context.Context, f repository.PartnerFilter) (repository.Page[domain.Partner], error)
	Get(ctx context.Context, id uint) (*domain.Partner, error)
	PartnersOfMonth(ctx context.Context, f repository.PartnerFilter) (repository.Page[domain.Partner], error)
	PublicPartnersOfMonth(ctx context.Context, f repository.PartnerFilter) (repository.Page[domain.Partner], error)
	GetActive(ctx context.Context, id uint) (*domain.Partner, error)
	GetActiveBySlug(ctx context.Context, slug string) (*domain.Partner, error)
	Create(ctx context.Context, actor domain.Identity, payload Payload) (*domain.Partner, error)
	Update(ctx context.Context, actor domain.Identity, id uint, payload Payload) (*domain.Partner, error)
	Delete(ctx context.Context, actor domain.Identity, id uint) error
}

type CouponService interface {
	List(ctx context.Context, f repository.CouponFilter) (repository.Page[domain.Coupon], error)
	Get(ctx context.Context, id uint) (*domain.Coupon, error)
	Usage(ctx context.Context, id uint, q repository.ListQuery) (*CouponUsageReport, error)
	Create(ctx context.Context, actor domain.Identity, payload Payload) (*domain.Coupon, error)
	Update(ctx context.Context, actor domain.Identity, id uint, payload Payload) (*domain.Coupon, error)
	Delete(ctx context.Context, actor domain.Identity, id uint) error
}

type OrderService interface {
	List(ctx context.Context, f repository.OrderFilter) (repository.Page[OrderView], error)
	Get(ctx context.Context, id uint) (*OrderView, error)
	Update(ctx context.Context, actor domain.Identity, id uint, payload Payload) (*OrderView, error)
}

type ReviewService interface {
	List(ctx context.Context, f repository.ReviewFilter) (repository.Page[ReviewView], error)
	Get(ctx context.Context, id uint) (*ReviewView, error)
	ProductReviews(ctx context.Context, productID uint, f repository.ReviewFilter, public bool) (repository.Page[ReviewView], error)
	Submit(ctx context.Context, productID uint, in SubmitReviewInput) (*ReviewView, error)
	Update(ctx context.Context, actor domain.Identity, id uint, payload Payload) (*ReviewView, error)
	Delete(ctx context.Context, actor domain.Identity, id uint) error
}

type CustomerService interface {
	CheckPurchase(ctx context.Context, customerID, productID uint) (PurchaseCheck, error)
}

type DashboardService interface {
	Stats(ctx context.Context) (DashboardStats, error)
}

var (
	_ AuthService      = (*AuthServiceImpl)(nil)
	_ BlogService      = (*BlogServiceImpl)(nil)
	_ CategoryService  = (*CategoryServiceImpl)(nil)
	_ ProductService   = (*ProductServiceImpl)(nil)
	_ PartnerService   = (*PartnerServiceImpl)(nil)
	_ CouponService    = (*CouponServiceImpl)(nil)
	_ OrderService     = (*OrderServiceImpl)(nil)
	_ ReviewService    = (*ReviewServiceImpl)(nil)
	_ CustomerService  = (*CustomerServiceImpl)(nil)
	_ DashboardService = (*DashboardServiceImpl)(nil)
)

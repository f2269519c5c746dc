// Package router assembles the public and admin route trees.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sandeepkv93/storefront-admin-api/internal/apperr"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/handler"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/middleware"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/response"
)

const maxBodyBytes = 1 << 20

type Dependencies struct {
	AuthHandler      *handler.AuthHandler
	BlogHandler      *handler.BlogHandler
	CategoryHandler  *handler.CategoryHandler
	ProductHandler   *handler.ProductHandler
	PartnerHandler   *handler.PartnerHandler
	CouponHandler    *handler.CouponHandler
	OrderHandler     *handler.OrderHandler
	ReviewHandler    *handler.ReviewHandler
	CustomerHandler  *handler.CustomerHandler
	DashboardHandler *handler.DashboardHandler
	HealthHandler    *handler.HealthHandler

	TokenVerifier middleware.TokenVerifier
	CORSOrigins   []string

	AuthRateLimitRPM  int
	APIRateLimitRPM   int
	GlobalRateLimiter GlobalRateLimiterFunc
	AuthRateLimiter   AuthRateLimiterFunc
	EnableOTelHTTP    bool
}

type GlobalRateLimiterFunc func(http.Handler) http.Handler
type AuthRateLimiterFunc func(http.Handler) http.Handler

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredRequestLogger)
	r.Use(middleware.Recover)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(dep.CORSOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))
	if dep.GlobalRateLimiter != nil {
		r.Use(dep.GlobalRateLimiter)
	} else {
		r.Use(middleware.NewRateLimiter(dep.APIRateLimitRPM, time.Minute, "api").Middleware())
	}
	authLimiter := dep.AuthRateLimiter
	if authLimiter == nil {
		authLimiter = middleware.NewRateLimiter(dep.AuthRateLimitRPM, time.Minute, "auth").Middleware()
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, r, http.StatusNotFound, string(apperr.KindNotFound), apperr.MessageNotFound, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Get("/health/live", dep.HealthHandler.Live)
	r.Get("/health/ready", dep.HealthHandler.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health/live", dep.HealthHandler.Live)
		r.Get("/health/ready", dep.HealthHandler.Ready)
		r.With(authLimiter).Post("/auth/login", handler.Handle("auth.login", dep.AuthHandler.Login))

		r.Get("/blogs", handler.Handle("blog.public_list", dep.BlogHandler.PublicList))
		r.Get("/blogs/{slug}", handler.Handle("blog.public_get", dep.BlogHandler.PublicGetBySlug))
		r.Get("/partners/month", handler.Handle("partner.public_month", dep.PartnerHandler.PublicOfMonth))
		r.Get("/partners/slug/{slug}", handler.Handle("partner.public_get_by_slug", dep.PartnerHandler.PublicGetBySlug))
		r.Get("/partners/{id}", handler.Handle("partner.public_get", dep.PartnerHandler.PublicGet))
		r.Get("/categories", handler.Handle("category.public_list", dep.CategoryHandler.List))
		r.Get("/products/{id}/reviews", handler.Handle("review.public_product", dep.ReviewHandler.PublicProductReviews))
		r.With(authLimiter).Post("/products/{id}/reviews", handler.Handle("review.submit", dep.ReviewHandler.Submit))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(dep.TokenVerifier))
			r.Get("/me", handler.Handle("auth.me", dep.AuthHandler.Me))

			r.Route("/blogs", func(r chi.Router) {
				h := dep.BlogHandler
				r.Get("/", handler.Handle("blog.list", h.List))
				r.Post("/", handler.Handle("blog.create", h.Create))
				r.Get("/{id}", handler.Handle("blog.get", h.Get))
				r.Patch("/{id}", handler.Handle("blog.update", h.Update))
				r.Delete("/{id}", handler.Handle("blog.delete", h.Delete))
			})
			r.Route("/categories", func(r chi.Router) {
				h := dep.CategoryHandler
				r.Get("/", handler.Handle("category.list", h.List))
				r.Post("/", handler.Handle("category.create", h.Create))
				r.Get("/{id}", handler.Handle("category.get", h.Get))
				r.Patch("/{id}", handler.Handle("category.update", h.Update))
				r.Delete("/{id}", handler.Handle("category.delete", h.Delete))
			})
			r.Route("/products", func(r chi.Router) {
				h := dep.ProductHandler
				r.Get("/", handler.Handle("product.list", h.List))
				r.Post("/", handler.Handle("product.create", h.Create))
				r.Get("/{id}", handler.Handle("product.get", h.Get))
				r.Patch("/{id}", handler.Handle("product.update", h.Update))
				r.Delete("/{id}", handler.Handle("product.delete", h.Delete))
				r.Get("/{id}/reviews", handler.Handle("review.product", dep.ReviewHandler.ProductReviews))
			})
			r.Route("/partners", func(r chi.Router) {
				h := dep.PartnerHandler
				r.Get("/", handler.Handle("partner.list", h.List))
				r.Get("/month", handler.Handle("partner.month", h.OfMonth))
				r.Post("/", handler.Handle("partner.create", h.Create))
				r.Get("/{id}", handler.Handle("partner.get", h.Get))
				r.Patch("/{id}", handler.Handle("partner.update", h.Update))
				r.Delete("/{id}", handler.Handle("partner.delete", h.Delete))
			})
			r.Route("/coupons", func(r chi.Router) {
				h := dep.CouponHandler
				r.Get("/", handler.Handle("coupon.list", h.List))
				r.Post("/", handler.Handle("coupon.create", h.Create))
				r.Get("/{id}", handler.Handle("coupon.get", h.Get))
				r.Get("/{id}/usage", handler.Handle("coupon.usage", h.Usage))
				r.Patch("/{id}", handler.Handle("coupon.update", h.Update))
				r.Delete("/{id}", handler.Handle("coupon.delete", h.Delete))
			})
			r.Route("/orders", func(r chi.Router) {
				h := dep.OrderHandler
				r.Get("/", handler.Handle("order.list", h.List))
				r.Get("/{id}", handler.Handle("order.get", h.Get))
				r.Patch("/{id}", handler.Handle("order.update", h.Update))
			})
			r.Route("/reviews", func(r chi.Router) {
				h := dep.ReviewHandler
				r.Get("/", handler.Handle("review.list", h.List))
				r.Get("/{id}", handler.Handle("review.get", h.Get))
				r.Patch("/{id}", handler.Handle("review.update", h.Update))
				r.Delete("/{id}", handler.Handle("review.delete", h.Delete))
			})
			r.Get("/customers/{id}/purchases/{productID}", handler.Handle("customer.check_purchase", dep.CustomerHandler.CheckPurchase))
			r.Get("/dashboard/stats", handler.Handle("dashboard.stats", dep.DashboardHandler.Stats))
		})
	})

	if dep.EnableOTelHTTP {
		return otelhttp.NewHandler(r, "http.server")
	}
	return r
}

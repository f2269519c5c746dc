package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/mock/gomock"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
	"github.com/sandeepkv93/storefront-admin-api/internal/service"
	servicegomock "github.com/sandeepkv93/storefront-admin-api/internal/service/gomock"
)

func blogRouterForTest(svc service.BlogService) http.Handler {
	h := NewBlogHandler(svc)
	return newRouterForTest(func(r chi.Router) {
		r.Get("/blogs", Handle("blog.public_list", h.PublicList))
		r.Get("/blogs/{slug}", Handle("blog.public_get", h.PublicGetBySlug))
		r.Get("/admin/blogs", Handle("blog.list", h.List))
		r.Post("/admin/blogs", Handle("blog.create", h.Create))
		r.Patch("/admin/blogs/{id}", Handle("blog.update", h.Update))
		r.Delete("/admin/blogs/{id}", Handle("blog.delete", h.Delete))
	})
}

func TestBlogHandlerListParsesFilterAndPaginates(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockBlogService(ctrl)
	router := blogRouterForTest(svc)

	svc.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f repository.BlogFilter) (repository.Page[domain.Blog], error) {
		if f.Status != "published" || f.Author != "Maya Ortiz" || f.Featured == nil || !*f.Featured {
			t.Fatalf("unexpected filter %+v", f)
		}
		if f.Q != "leather" || f.Limit != 10 || f.Offset != 0 {
			t.Fatalf("unexpected list query %+v", f.ListQuery)
		}
		items := make([]domain.Blog, 10)
		for i := range items {
			items[i] = domain.Blog{Base: domain.Base{ID: uint(i + 1)}, Status: domain.BlogStatusPublished}
		}
		return repository.Page[domain.Blog]{Items: items, Total: 25, Limit: 10, Offset: 0}, nil
	})

	rr, env := doRequestForTest(t, router, http.MethodGet, "/admin/blogs?status=Published&author=%20Maya%20Ortiz&featured=true&q=%20leather%20&limit=10&offset=0", "")
	if rr.Code != http.StatusOK || !env.Success {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var items []domain.Blog
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 10 || env.Pagination == nil || env.Pagination.Total != 25 || !env.Pagination.HasMore {
		t.Fatalf("unexpected page len=%d pagination=%+v", len(items), env.Pagination)
	}
}

func TestBlogHandlerRejectsBadPaginationBeforeServiceCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := blogRouterForTest(servicegomock.NewMockBlogService(ctrl))

	cases := map[string]string{
		"/admin/blogs?limit=abc":      "limit must be a non-negative integer",
		"/admin/blogs?limit=-1":       "limit must be a non-negative integer",
		"/admin/blogs?limit=101":      "limit must not exceed 100",
		"/admin/blogs?offset=-5":      "offset must be a non-negative integer",
		"/admin/blogs?featured=maybe": "featured must be true or false",
	}
	for target, message := range cases {
		rr, env := doRequestForTest(t, router, http.MethodGet, target, "")
		expectErrorForTest(t, rr, env, http.StatusBadRequest, "BAD_REQUEST", message)
	}
}

func TestBlogHandlerEmptyPageKeepsDataArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockBlogService(ctrl)
	svc.EXPECT().ListPublished(gomock.Any(), gomock.Any()).Return(repository.Page[domain.Blog]{Total: 3, Limit: 0}, nil)

	rr, env := doRequestForTest(t, blogRouterForTest(svc), http.MethodGet, "/blogs?limit=0", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if string(env.Data) != "[]" || env.Pagination.Total != 3 || !env.Pagination.HasMore {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}

func TestBlogHandlerPublicSlugNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockBlogService(ctrl)
	svc.EXPECT().GetPublishedBySlug(gomock.Any(), "spring-collection-preview").Return(nil, repository.ErrNotFound)

	rr, env := doRequestForTest(t, blogRouterForTest(svc), http.MethodGet, "/blogs/spring-collection-preview", "")
	expectErrorForTest(t, rr, env, http.StatusNotFound, "NOT_FOUND", "Resource not found")
}

func TestBlogHandlerCreatePassesActorAndPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockBlogService(ctrl)
	svc.EXPECT().Create(gomock.Any(), adminForTest, gomock.Any()).DoAndReturn(func(_ context.Context, _ domain.Identity, p service.Payload) (*domain.Blog, error) {
		if string(p["title"]) != `"Hello"` {
			t.Fatalf("unexpected payload %v", p)
		}
		return &domain.Blog{Base: domain.Base{ID: 9, CreatedBy: adminForTest.ID}, Title: "Hello", Slug: "hello"}, nil
	})

	rr, env := doRequestForTest(t, blogRouterForTest(svc), http.MethodPost, "/admin/blogs", `{"title":"Hello"}`)
	if rr.Code != http.StatusCreated || !env.Success {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestBlogHandlerRejectsNonObjectBodies(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := blogRouterForTest(servicegomock.NewMockBlogService(ctrl))

	for _, body := range []string{"", "null", "[1,2]", `"title"`, `{"title":"a"} {"title":"b"}`, `{"title":`} {
		rr, env := doRequestForTest(t, router, http.MethodPost, "/admin/blogs", body)
		expectErrorForTest(t, rr, env, http.StatusBadRequest, "BAD_REQUEST", service.MessageInvalidBody)
	}
}

func TestBlogHandlerMapsServiceErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", validation.Errors{"title": validation.NewError("required", "Blog title is required")}, http.StatusBadRequest, "BAD_REQUEST", "Blog title is required"},
		{"conflict", fmt.Errorf("%w: duplicate slug", repository.ErrConflict), http.StatusConflict, "CONFLICT", "Resource already exists"},
		{"not found", repository.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "Resource not found"},
		{"internal", errors.New("pq: relation blogs does not exist"), http.StatusInternalServerError, "INTERNAL", "Internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := servicegomock.NewMockBlogService(ctrl)
			svc.EXPECT().Update(gomock.Any(), adminForTest, uint(4), gomock.Any()).Return(nil, tc.err)

			rr, env := doRequestForTest(t, blogRouterForTest(svc), http.MethodPatch, "/admin/blogs/4", `{"title":""}`)
			expectErrorForTest(t, rr, env, tc.status, tc.code, tc.message)
		})
	}
}

func TestBlogHandlerRejectsInvalidPathID(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := blogRouterForTest(servicegomock.NewMockBlogService(ctrl))
	for _, target := range []string{"/admin/blogs/abc", "/admin/blogs/0", "/admin/blogs/-3"} {
		rr, env := doRequestForTest(t, router, http.MethodDelete, target, "")
		expectErrorForTest(t, rr, env, http.StatusBadRequest, "BAD_REQUEST", "Invalid id")
	}
}

func TestBlogHandlerDeleteAnswersID(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockBlogService(ctrl)
	svc.EXPECT().Delete(gomock.Any(), adminForTest, uint(12)).Return(nil)

	rr, env := doRequestForTest(t, blogRouterForTest(svc), http.MethodDelete, "/admin/blogs/12", "")
	if rr.Code != http.StatusOK || string(env.Data) != `{"id":12}` {
		t.Fatalf("unexpected delete response %d %s", rr.Code, rr.Body.String())
	}
}

func TestPartnerHandlerMonthFilters(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockPartnerService(ctrl)
	h := NewPartnerHandler(svc)
	router := newRouterForTest(func(r chi.Router) {
		r.Get("/partners/month", Handle("partner.public_month", h.PublicOfMonth))
		r.Get("/partners/{id}", Handle("partner.public_get", h.PublicGet))
	})

	svc.EXPECT().PublicPartnersOfMonth(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f repository.PartnerFilter) (repository.Page[domain.Partner], error) {
		if f.Month != "2026-04" {
			t.Fatalf("unexpected month %q", f.Month)
		}
		return repository.Page[domain.Partner]{Items: []domain.Partner{{Name: "Harbor"}}, Total: 1, Limit: 20}, nil
	})
	rr, env := doRequestForTest(t, router, http.MethodGet, "/partners/month?month=2026-04", "")
	if rr.Code != http.StatusOK || env.Pagination.HasMore {
		t.Fatalf("unexpected response %d %s", rr.Code, rr.Body.String())
	}

	rr, env = doRequestForTest(t, router, http.MethodGet, "/partners/month?month=April", "")
	expectErrorForTest(t, rr, env, http.StatusBadRequest, "BAD_REQUEST", "month must use the YYYY-MM format")

	svc.EXPECT().GetActive(gomock.Any(), uint(404)).Return(nil, repository.ErrNotFound)
	rr, env = doRequestForTest(t, router, http.MethodGet, "/partners/404", "")
	expectErrorForTest(t, rr, env, http.StatusNotFound, "NOT_FOUND", "Resource not found")
}

func TestProductHandlerPriceFilters(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockProductService(ctrl)
	h := NewProductHandler(svc)
	router := newRouterForTest(func(r chi.Router) { r.Get("/admin/products", Handle("product.list", h.List)) })

	svc.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f repository.ProductFilter) (repository.Page[domain.Product], error) {
		if f.CategoryID != 3 || f.MinPrice == nil || *f.MinPrice != 10 || f.MaxPrice != nil {
			t.Fatalf("unexpected filter %+v", f)
		}
		return repository.Page[domain.Product]{Limit: 20}, nil
	})
	if rr, _ := doRequestForTest(t, router, http.MethodGet, "/admin/products?category_id=3&min_price=10", ""); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	rr, env := doRequestForTest(t, router, http.MethodGet, "/admin/products?max_price=cheap", "")
	expectErrorForTest(t, rr, env, http.StatusBadRequest, "BAD_REQUEST", "max_price must be a non-negative number")
}

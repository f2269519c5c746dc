package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sandeepkv93/storefront-admin-api/internal/apperr"
	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/response"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
	"github.com/sandeepkv93/storefront-admin-api/internal/service"
)

type BlogHandler struct {
	svc service.BlogService
}

func NewBlogHandler(svc service.BlogService) *BlogHandler {
	return &BlogHandler{svc: svc}
}

func (h *BlogHandler) filter(r *http.Request) (repository.BlogFilter, error) {
	q, err := parseListQuery(r)
	if err != nil {
		return repository.BlogFilter{}, err
	}
	featured, err := queryBool(r, "featured")
	if err != nil {
		return repository.BlogFilter{}, err
	}
	return repository.BlogFilter{
		ListQuery: q,
		Status:    queryString(r, "status"),
		Author:    strings.TrimSpace(r.URL.Query().Get("author")),
		Featured:  featured,
	}, nil
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) error {
	f, err := h.filter(r)
	if err != nil {
		return err
	}
	page, err := h.svc.List(r.Context(), f)
	if err != nil {
		return err
	}
	writePage(w, r, page)
	return nil
}

func (h *BlogHandler) PublicList(w http.ResponseWriter, r *http.Request) error {
	f, err := h.filter(r)
	if err != nil {
		return err
	}
	page, err := h.svc.ListPublished(r.Context(), f)
	if err != nil {
		return err
	}
	writePage(w, r, page)
	return nil
}

func (h *BlogHandler) PublicGetBySlug(w http.ResponseWriter, r *http.Request) error {
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		return apperr.BadRequest("Invalid slug")
	}
	blog, err := h.svc.GetPublishedBySlug(r.Context(), slug)
	if err != nil {
		return err
	}
	response.JSON(w, r, http.StatusOK, blog)
	return nil
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) error {
	return getByID[domain.Blog](h.svc)(w, r)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) error {
	return createRecord[domain.Blog]("blog", h.svc)(w, r)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) error {
	return updateRecord[domain.Blog]("blog", h.svc)(w, r)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	return deleteRecord("blog", h.svc)(w, r)
}

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) error {
	q, err := parseListQuery(r)
	if err != nil {
		return err
	}
	page, err := h.svc.List(r.Context(), q)
	if err != nil {
		return err
	}
	writePage(w, r, page)
	return nil
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) error {
	return getByID[domain.Category](h.svc)(w, r)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) error {
	return createRecord[domain.Category]("category", h.svc)(w, r)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) error {
	return updateRecord[domain.Category]("category", h.svc)(w, r)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	return deleteRecord("category", h.svc)(w, r)
}

type ProductHandler struct {
	svc service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) error {
	q, err := parseListQuery(r)
	if err != nil {
		return err
	}
	f := repository.ProductFilter{ListQuery: q, Status: queryString(r, "status")}
	var categoryErr, minErr, maxErr error
	f.CategoryID, categoryErr = queryUint(r, "category_id")
	f.MinPrice, minErr = queryFloat(r, "min_price")
	f.MaxPrice, maxErr = queryFloat(r, "max_price")
	if err := firstErr(categoryErr, minErr, maxErr); err != nil {
		return err
	}
	page, err := h.svc.List(r.Context(), f)
	if err != nil {
		return err
	}
	writePage(w, r, page)
	return nil
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) error {
	return getByID[domain.Product](h.svc)(w, r)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) error {
	return createRecord[domain.Product]("product", h.svc)(w, r)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) error {
	return updateRecord[domain.Product]("product", h.svc)(w, r)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	return deleteRecord("product", h.svc)(w, r)
}

type PartnerHandler struct {
	svc service.PartnerService
}

func NewPartnerHandler(svc service.PartnerService) *PartnerHandler {
	return &PartnerHandler{svc: svc}
}

func (h *PartnerHandler) filter(r *http.Request) (repository.PartnerFilter, error) {
	q, err := parseListQuery(r)
	if err != nil {
		return repository.PartnerFilter{}, err
	}
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month != "" && !service.IsMonth(month) {
		return repository.PartnerFilter{}, apperr.BadRequest("month must use the YYYY-MM format")
	}
	featured, featuredErr := queryBool(r, "featured")
	active, activeErr := queryBool(r, "active")
	if err := firstErr(featuredErr, activeErr); err != nil {
		return repository.PartnerFilter{}, err
	}
	return repository.PartnerFilter{ListQuery: q, Month: month, Featured: featured, Active: active}, nil
}

func (h *PartnerHandler) List(w http.ResponseWriter, r *http.Request) error {
	f, err := h.filter(r)
	if err != nil {
		return err
	}
	page, err := h.svc.List(r.Context(), f)
	if err != nil {
		return err
	}
	writePage(w, r, page)
	return nil
}

func (h *PartnerHandler) OfMonth(w http.ResponseWriter, r *http.Request) error {
	f, err := h.filter(r)
	if err != nil {
		return err
	}
	page, err := h.svc.PartnersOfMonth(r.Context(), f)
	if err != nil {
		return err
	}
	writePage(w, r, page)
	return nil
}

func (h *PartnerHandler) PublicOfMonth(w http.ResponseWriter, r *http.Request) error {
	f, err := h.filter(r)
	if err != nil {
		return err
	}
	page, err := h.svc.PublicPartnersOfMonth(r.Context(), f)
	if err != nil {
		return err
	}
	writePage(w, r, page)
	return nil
}

func (h *PartnerHandler) PublicGet(w http.ResponseWriter, r *http.Request) error {
	id, err := parsePathID(r, "id")
	if err != nil {
		return err
	}
	p, err := h.svc.GetActive(r.Context(), id)
	if err != nil {
		return err
	}
	response.JSON(w, r, http.StatusOK, p)
	return nil
}

func (h *PartnerHandler) PublicGetBySlug(w http.ResponseWriter, r *http.Request) error {
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		return apperr.BadRequest("Invalid slug")
	}
	p, err := h.svc.GetActiveBySlug(r.Context(), slug)
	if err != nil {
		return err
	}
	response.JSON(w, r, http.StatusOK, p)
	return nil
}

func (h *PartnerHandler) Get(w http.ResponseWriter, r *http.Request) error {
	return getByID[domain.Partner](h.svc)(w, r)
}

func (h *PartnerHandler) Create(w http.ResponseWriter, r *http.Request) error {
	return createRecord[domain.Partner]("partner", h.svc)(w, r)
}

func (h *PartnerHandler) Update(w http.ResponseWriter, r *http.Request) error {
	return updateRecord[domain.Partner]("partner", h.svc)(w, r)
}

func (h *PartnerHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	return deleteRecord("partner", h.svc)(w, r)
}

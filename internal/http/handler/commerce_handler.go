package handler

import (
	"net/http"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/response"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
	"github.com/sandeepkv93/storefront-admin-api/internal/service"
)

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) error {
	q, err := parseListQuery(r)
	if err != nil {
		return err
	}
	f := repository.OrderFilter{
		ListQuery:      q,
		Status:         queryString(r, "status"),
		PaymentStatus:  queryString(r, "payment_status"),
		ShippingStatus: queryString(r, "shipping_status"),
	}
	var customerErr, fromErr, toErr error
	f.CustomerID, customerErr = queryUint(r, "customer_id")
	f.From, fromErr = queryTime(r, "from", false)
	f.To, toErr = queryTime(r, "to", true)
	if err := firstErr(customerErr, fromErr, toErr); err != nil {
		return err
	}
	page, err := h.svc.List(r.Context(), f)
	if err != nil {
		return err
	}
	writePage(w, r, page)
	return nil
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) error {
	return getByID[service.OrderView](h.svc)(w, r)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) error {
	return updateRecord[service.OrderView]("order", h.svc)(w, r)
}

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) filter(r *http.Request) (repository.ReviewFilter, error) {
	q, err := parseListQuery(r)
	if err != nil {
		return repository.ReviewFilter{}, err
	}
	f := repository.ReviewFilter{ListQuery: q, Status: queryString(r, "status")}
	var ratingErr, minErr, productErr, customerErr, verifiedErr error
	f.Rating, ratingErr = queryRating(r, "rating")
	f.MinRating, minErr = queryRating(r, "min_rating")
	f.ProductID, productErr = queryUint(r, "product_id")
	f.CustomerID, customerErr = queryUint(r, "customer_id")
	f.Verified, verifiedErr = queryBool(r, "verified")
	return f, firstErr(ratingErr, minErr, productErr, customerErr, verifiedErr)
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) error {
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

func (h *ReviewHandler) productReviews(public bool) Func {
	return func(w http.ResponseWriter, r *http.Request) error {
		productID, err := parsePathID(r, "id")
		if err != nil {
			return err
		}
		f, err := h.filter(r)
		if err != nil {
			return err
		}
		page, err := h.svc.ProductReviews(r.Context(), productID, f, public)
		if err != nil {
			return err
		}
		writePage(w, r, page)
		return nil
	}
}

func (h *ReviewHandler) ProductReviews(w http.ResponseWriter, r *http.Request) error {
	return h.productReviews(false)(w, r)
}

func (h *ReviewHandler) PublicProductReviews(w http.ResponseWriter, r *http.Request) error {
	return h.productReviews(true)(w, r)
}

// Submit accepts a storefront review for moderation.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) error {
	productID, err := parsePathID(r, "id")
	if err != nil {
		return err
	}
	var in service.SubmitReviewInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	review, err := h.svc.Submit(r.Context(), productID, in)
	if err != nil {
		return err
	}
	response.JSON(w, r, http.StatusCreated, review)
	return nil
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) error {
	return getByID[service.ReviewView](h.svc)(w, r)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) error {
	return updateRecord[service.ReviewView]("review", h.svc)(w, r)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	return deleteRecord("review", h.svc)(w, r)
}

type CouponHandler struct {
	svc service.CouponService
}

func NewCouponHandler(svc service.CouponService) *CouponHandler {
	return &CouponHandler{svc: svc}
}

func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) error {
	q, err := parseListQuery(r)
	if err != nil {
		return err
	}
	active, err := queryBool(r, "active")
	if err != nil {
		return err
	}
	page, err := h.svc.List(r.Context(), repository.CouponFilter{ListQuery: q, Active: active})
	if err != nil {
		return err
	}
	writePage(w, r, page)
	return nil
}

// Usage answers the coupon with its redemption totals; pagination describes
// the usages window.
func (h *CouponHandler) Usage(w http.ResponseWriter, r *http.Request) error {
	id, err := parsePathID(r, "id")
	if err != nil {
		return err
	}
	q, err := parseListQuery(r)
	if err != nil {
		return err
	}
	report, err := h.svc.Usage(r.Context(), id, q)
	if err != nil {
		return err
	}
	response.JSONWithPagination(w, r, report, response.NewPagination(report.Total, report.Limit, report.Offset))
	return nil
}

func (h *CouponHandler) Get(w http.ResponseWriter, r *http.Request) error {
	return getByID[domain.Coupon](h.svc)(w, r)
}

func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) error {
	return createRecord[domain.Coupon]("coupon", h.svc)(w, r)
}

func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) error {
	return updateRecord[domain.Coupon]("coupon", h.svc)(w, r)
}

func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	return deleteRecord("coupon", h.svc)(w, r)
}

type CustomerHandler struct {
	svc service.CustomerService
}

func NewCustomerHandler(svc service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

func (h *CustomerHandler) CheckPurchase(w http.ResponseWriter, r *http.Request) error {
	customerID, err := parsePathID(r, "id")
	if err != nil {
		return err
	}
	productID, err := parsePathID(r, "productID")
	if err != nil {
		return err
	}
	check, err := h.svc.CheckPurchase(r.Context(), customerID, productID)
	if err != nil {
		return err
	}
	response.JSON(w, r, http.StatusOK, check)
	return nil
}

type DashboardHandler struct {
	svc service.DashboardService
}

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		return err
	}
	response.JSON(w, r, http.StatusOK, stats)
	return nil
}

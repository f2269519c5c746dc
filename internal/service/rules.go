package service

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// IsMonth reports whether s is a "YYYY-MM" partner month.
func IsMonth(s string) bool {
	return monthPattern.MatchString(s)
}

// CurrentMonth formats t as the "YYYY-MM" partner month in UTC.
func CurrentMonth(t time.Time) string {
	return t.UTC().Format("2006-01")
}

var blogRules = Rules[domain.Blog]{
	Normalize: func(b *domain.Blog) {
		b.Title = strings.TrimSpace(b.Title)
		b.Author = strings.TrimSpace(b.Author)
		b.Status = strings.ToLower(strings.TrimSpace(b.Status))
		if b.Status == "" {
			b.Status = domain.BlogStatusDraft
		}
	},
	Validate: func(b *domain.Blog) error {
		return validation.ValidateStruct(b,
			validation.Field(&b.Title, validation.Required.Error("Blog title is required"), validation.Length(1, 200)),
			validation.Field(&b.Excerpt, validation.Length(0, 500)),
			validation.Field(&b.Status, validation.In(domain.BlogStatusDraft, domain.BlogStatusPublished, domain.BlogStatusArchived).Error("Blog status must be draft, published or archived")),
			validation.Field(&b.CoverImage, is.URL.Error("Cover image must be a valid URL")),
		)
	},
}

var categoryRules = Rules[domain.Category]{
	Normalize: func(c *domain.Category) {
		c.Name = strings.TrimSpace(c.Name)
	},
	Validate: func(c *domain.Category) error {
		return validation.ValidateStruct(c,
			validation.Field(&c.Name, validation.Required.Error("Category name is required"), validation.Length(1, 120)),
			validation.Field(&c.Description, validation.Length(0, 500)),
		)
	},
}

var productRules = Rules[domain.Product]{
	Normalize: func(p *domain.Product) {
		p.Name = strings.TrimSpace(p.Name)
		p.Status = strings.ToLower(strings.TrimSpace(p.Status))
		if p.Status == "" {
			p.Status = domain.ProductStatusActive
		}
	},
	Validate: func(p *domain.Product) error {
		return validation.ValidateStruct(p,
			validation.Field(&p.Name, validation.Required.Error("Product name is required"), validation.Length(1, 160)),
			validation.Field(&p.Price, validation.Min(0.0).Error("Price must not be negative")),
			validation.Field(&p.Stock, validation.Min(0).Error("Stock must not be negative")),
			validation.Field(&p.Status, validation.In(domain.ProductStatusActive, domain.ProductStatusDraft, domain.ProductStatusArchived).Error("Product status must be active, draft or archived")),
		)
	},
}

func partnerRules(now func() time.Time) Rules[domain.Partner] {
	return Rules[domain.Partner]{
		Normalize: func(p *domain.Partner) {
			p.Name = strings.TrimSpace(p.Name)
			p.Month = strings.TrimSpace(p.Month)
			if p.Month == "" {
				p.Month = CurrentMonth(now())
			}
		},
		Validate: func(p *domain.Partner) error {
			return validation.ValidateStruct(p,
				validation.Field(&p.Name, validation.Required.Error("Partner name is required"), validation.Length(1, 160)),
				validation.Field(&p.Month, validation.Match(monthPattern).Error("Month must use the YYYY-MM format")),
				validation.Field(&p.Website, is.URL.Error("Website must be a valid URL")),
				validation.Field(&p.LogoURL, is.URL.Error("Logo URL must be a valid URL")),
			)
		},
	}
}

var couponRules = Rules[domain.Coupon]{
	Normalize: func(c *domain.Coupon) {
		c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
		c.DiscountType = strings.ToLower(strings.TrimSpace(c.DiscountType))
	},
	Validate: func(c *domain.Coupon) error {
		return validation.ValidateStruct(c,
			validation.Field(&c.Code, validation.Required.Error("Coupon code is required"), validation.Length(1, 40)),
			validation.Field(&c.DiscountType, validation.Required.Error("Discount type is required"), validation.In(domain.DiscountTypePercent, domain.DiscountTypeFixed).Error("Discount type must be percent or fixed")),
			validation.Field(&c.DiscountValue,
				validation.Min(0.0).Exclusive().Error("Discount value must be greater than zero"),
				validation.When(c.DiscountType == domain.DiscountTypePercent, validation.Max(100.0).Error("Percent discounts cannot exceed 100")),
			),
			validation.Field(&c.MaxUses, validation.Min(0).Error("Max uses must not be negative")),
		)
	},
}

var orderRules = Rules[domain.Order]{
	Validate: func(o *domain.Order) error {
		return validation.ValidateStruct(o,
			validation.Field(&o.Status, validation.In(domain.OrderStatusPending, domain.OrderStatusProcessing, domain.OrderStatusShipped, domain.OrderStatusDelivered, domain.OrderStatusCancelled).Error("Unknown order status")),
			validation.Field(&o.PaymentStatus, validation.In(domain.PaymentStatusPending, domain.PaymentStatusPaid, domain.PaymentStatusFailed, domain.PaymentStatusRefunded).Error("Unknown payment status")),
			validation.Field(&o.ShippingStatus, validation.In(domain.ShippingStatusPending, domain.ShippingStatusShipped, domain.ShippingStatusDelivered, domain.ShippingStatusReturned).Error("Unknown shipping status")),
			validation.Field(&o.Total, validation.Min(0.0).Error("Total must not be negative")),
		)
	},
}

var reviewRules = Rules[domain.Review]{
	Normalize: func(r *domain.Review) {
		r.Status = strings.ToLower(strings.TrimSpace(r.Status))
		if r.Status == "" {
			r.Status = domain.ReviewStatusPending
		}
	},
	Validate: func(r *domain.Review) error {
		return validation.ValidateStruct(r,
			validation.Field(&r.Rating, validation.Required.Error("Rating must be between 1 and 5"), validation.Min(1).Error("Rating must be between 1 and 5"), validation.Max(5).Error("Rating must be between 1 and 5")),
			validation.Field(&r.Status, validation.In(domain.ReviewStatusPending, domain.ReviewStatusApproved, domain.ReviewStatusRejected).Error("Review status must be pending, approved or rejected")),
		)
	},
}

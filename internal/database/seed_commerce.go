package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
)

type sampleLine struct {
	productSlug string
	quantity    int
}

type sampleOrder struct {
	number        string
	customerEmail string
	status        string
	paymentStatus string
	shipping      string
	lines         []sampleLine
	couponCode    string
	age           time.Duration
}

var sampleProducts = []domain.Product{
	{Name: "Canvas Tote", Slug: "canvas-tote", Description: "Heavy canvas tote with leather handles.", Price: 48, Stock: 40, Status: domain.ProductStatusActive},
	{Name: "Dot Grid Notebook", Slug: "dot-grid-notebook", Description: "A5 notebook, 160 pages.", Price: 18, Stock: 120, Status: domain.ProductStatusActive},
	{Name: "Stoneware Mug", Slug: "stoneware-mug", Description: "Hand-glazed 350ml mug.", Price: 26, Stock: 60, Status: domain.ProductStatusActive},
}

var sampleProductCategory = map[string]string{
	"canvas-tote":       "bags",
	"dot-grid-notebook": "stationery",
	"stoneware-mug":     "home",
}

var sampleCustomers = []domain.Customer{
	{Name: "Ada Lovelace", Email: "ada@example.com"},
	{Name: "Grace Hopper", Email: "grace@example.com"},
}

var sampleCoupons = []domain.Coupon{
	{Code: "WELCOME10", Description: "Ten percent off a first order.", DiscountType: domain.DiscountTypePercent, DiscountValue: 10, MaxUses: 500, Active: true},
}

var sampleOrders = []sampleOrder{
	{
		number: "SAMPLE-1001", customerEmail: "ada@example.com",
		status: domain.OrderStatusDelivered, paymentStatus: domain.PaymentStatusPaid, shipping: domain.ShippingStatusDelivered,
		lines:      []sampleLine{{"canvas-tote", 1}, {"dot-grid-notebook", 2}},
		couponCode: "WELCOME10",
		age:        72 * time.Hour,
	},
	{
		number: "SAMPLE-1002", customerEmail: "grace@example.com",
		status: domain.OrderStatusPending, paymentStatus: domain.PaymentStatusPending, shipping: domain.ShippingStatusPending,
		lines: []sampleLine{{"stoneware-mug", 2}},
		age:   3 * time.Hour,
	},
}

// seedSampleCommerce loads a small store: products, customers, one coupon and
// two orders, the first of them paid with a recorded coupon redemption.
func seedSampleCommerce(ctx context.Context, db *gorm.DB, now time.Time, categories map[string]uint, report *SeedReport) error {
	tx := db.WithContext(ctx)

	products := make(map[string]domain.Product, len(sampleProducts))
	for _, p := range sampleProducts {
		if id, ok := categories[sampleProductCategory[p.Slug]]; ok {
			p.CategoryID = &id
		}
		created, err := firstOrCreateBy(tx, &p, "slug", p.Slug)
		if err != nil {
			return err
		}
		if created {
			report.CreatedProducts++
		}
		products[p.Slug] = p
	}

	customers := make(map[string]uint, len(sampleCustomers))
	for _, c := range sampleCustomers {
		created, err := firstOrCreateBy(tx, &c, "email", c.Email)
		if err != nil {
			return err
		}
		if created {
			report.CreatedCustomers++
		}
		customers[c.Email] = c.ID
	}

	coupons := make(map[string]domain.Coupon, len(sampleCoupons))
	for _, c := range sampleCoupons {
		created, err := firstOrCreateBy(tx, &c, "code", c.Code)
		if err != nil {
			return err
		}
		if created {
			report.CreatedCoupons++
		}
		coupons[c.Code] = c
	}

	orderRepo := repository.NewOrderRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	for _, so := range sampleOrders {
		err := tx.Where("order_number = ?", so.number).First(&domain.Order{}).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		placed := now.Add(-so.age)
		order := &domain.Order{
			Base:           domain.Base{CreatedAt: placed, UpdatedAt: placed},
			OrderNumber:    so.number,
			CustomerID:     customers[so.customerEmail],
			Status:         so.status,
			PaymentStatus:  so.paymentStatus,
			ShippingStatus: so.shipping,
		}
		for _, line := range so.lines {
			p := products[line.productSlug]
			order.Items = append(order.Items, domain.OrderItem{ProductID: p.ID, Quantity: line.quantity, UnitPrice: p.Price})
			order.Total += p.Price * float64(line.quantity)
		}

		var discount float64
		coupon, hasCoupon := coupons[so.couponCode]
		if hasCoupon {
			discount = couponDiscount(coupon, order.Total)
			order.Total -= discount
		}
		if err := orderRepo.CreateWithItems(ctx, order); err != nil {
			return err
		}
		report.CreatedOrders++

		if hasCoupon {
			usage := &domain.CouponUsage{
				CouponID:       coupon.ID,
				OrderID:        order.ID,
				CustomerID:     order.CustomerID,
				DiscountAmount: discount,
				UsedAt:         placed,
			}
			if err := couponRepo.RecordUsage(ctx, usage); err != nil {
				return err
			}
		}
	}
	return nil
}

func couponDiscount(c domain.Coupon, subtotal float64) float64 {
	if c.DiscountType == domain.DiscountTypePercent {
		return subtotal * c.DiscountValue / 100
	}
	return min(c.DiscountValue, subtotal)
}

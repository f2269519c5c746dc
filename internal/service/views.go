package service

import "github.com/sandeepkv93/storefront-admin-api/internal/domain"

// CustomerSummary is embedded in order and review responses. A missing
// customer yields the zero summary.
type CustomerSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ProductSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type OrderView struct {
	domain.Order
	Customer CustomerSummary `json:"customer"`
}

type ReviewView struct {
	domain.Review
	Product  ProductSummary  `json:"product"`
	Reviewer CustomerSummary `json:"reviewer"`
}

func summarizeCustomer(c *domain.Customer) CustomerSummary {
	if c == nil {
		return CustomerSummary{}
	}
	return CustomerSummary{ID: c.ID, Name: c.Name, Email: c.Email}
}

func summarizeProduct(p *domain.Product) ProductSummary {
	if p == nil {
		return ProductSummary{}
	}
	return ProductSummary{ID: p.ID, Name: p.Name, Slug: p.Slug}
}

func NewOrderView(o domain.Order) OrderView {
	v := OrderView{Order: o, Customer: summarizeCustomer(o.Customer)}
	v.Order.Customer = nil
	return v
}

func NewReviewView(r domain.Review) ReviewView {
	v := ReviewView{Review: r, Product: summarizeProduct(r.Product), Reviewer: summarizeCustomer(r.Reviewer)}
	v.Review.Product = nil
	v.Review.Reviewer = nil
	return v
}

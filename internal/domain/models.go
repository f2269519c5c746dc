package domain

// Models lists every persisted model in migration order.
func Models() []any {
	return []any{
		&AdminUser{},
		&Category{},
		&Product{},
		&Customer{},
		&Order{},
		&OrderItem{},
		&Review{},
		&Blog{},
		&Partner{},
		&Coupon{},
		&CouponUsage{},
	}
}

package domain

import "time"

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"

	ShippingStatusPending   = "pending"
	ShippingStatusShipped   = "shipped"
	ShippingStatusDelivered = "delivered"
	ShippingStatusReturned  = "returned"

	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"

	DiscountTypePercent = "percent"
	DiscountTypeFixed   = "fixed"
)

type Customer struct {
	Base
	Name  string `gorm:"size:160;not null" json:"name"`
	Email string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone string `gorm:"size:40" json:"phone"`
}

type Order struct {
	Base
	OrderNumber    string      `gorm:"size:40;not null;uniqueIndex" json:"order_number"`
	CustomerID     uint        `gorm:"index" json:"customer_id"`
	Status         string      `gorm:"size:20;not null;default:pending;index" json:"status"`
	PaymentStatus  string      `gorm:"size:20;not null;default:pending;index" json:"payment_status"`
	ShippingStatus string      `gorm:"size:20;not null;default:pending;index" json:"shipping_status"`
	Total          float64     `gorm:"not null;default:0" json:"total"`
	Notes          string      `gorm:"size:1000" json:"notes"`
	Customer       *Customer   `gorm:"foreignKey:CustomerID" json:"-"`
	Items          []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"order_id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
}

type Review struct {
	Base
	ProductID        uint      `gorm:"index;not null" json:"product_id"`
	CustomerID       uint      `gorm:"index;not null" json:"customer_id"`
	Rating           int       `gorm:"not null" json:"rating"`
	Title            string    `gorm:"size:200" json:"title"`
	Comment          string    `gorm:"type:text" json:"comment"`
	Status           string    `gorm:"size:20;not null;default:pending;index" json:"status"`
	VerifiedPurchase bool      `gorm:"not null" json:"verified_purchase"`
	Product          *Product  `gorm:"foreignKey:ProductID" json:"-"`
	Reviewer         *Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

type Coupon struct {
	Base
	Code          string     `gorm:"size:40;not null;uniqueIndex" json:"code"`
	Description   string     `gorm:"size:500" json:"description"`
	DiscountType  string     `gorm:"size:20;not null" json:"discount_type"`
	DiscountValue float64    `gorm:"not null" json:"discount_value"`
	MaxUses       int        `gorm:"not null;default:0" json:"max_uses"`
	ExpiresAt     *time.Time `json:"expires_at"`
	Active        bool       `gorm:"not null" json:"active"`
}

type CouponUsage struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CouponID       uint      `gorm:"index;not null" json:"coupon_id"`
	OrderID        uint      `gorm:"index" json:"order_id"`
	CustomerID     uint      `gorm:"index" json:"customer_id"`
	DiscountAmount float64   `gorm:"not null;default:0" json:"discount_amount"`
	UsedAt         time.Time `gorm:"index;not null" json:"used_at"`
}

type AdminUser struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name         string     `gorm:"size:160" json:"name"`
	Role         string     `gorm:"size:40;not null;default:admin" json:"role"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Active       bool       `gorm:"not null" json:"active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *AdminUser) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

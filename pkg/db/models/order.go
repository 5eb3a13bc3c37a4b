package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ameedanxari/menumaker-backend/pkg/enums"
	"github.com/ameedanxari/menumaker-backend/pkg/types"
)

// Order is the immutable snapshot taken at placement time. Only Status and
// UpdatedAt change after creation; the applied coupon is frozen as jsonb and
// never re-evaluated.
type Order struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BusinessID    uuid.UUID            `gorm:"column:business_id;type:uuid;not null" json:"business_id"`
	CustomerID    uuid.UUID            `gorm:"column:customer_id;type:uuid;not null" json:"customer_id"`
	CustomerName  string               `gorm:"column:customer_name;not null" json:"customer_name"`
	CustomerPhone *string              `gorm:"column:customer_phone" json:"customer_phone,omitempty"`
	Status        enums.OrderStatus    `gorm:"column:status;type:order_status;not null;default:'pending'" json:"status"`
	PaymentMethod enums.PaymentMethod  `gorm:"column:payment_method;type:payment_method;not null;default:'cash'" json:"payment_method"`
	SubtotalCents int                  `gorm:"column:subtotal_cents;not null" json:"subtotal_cents"`
	DiscountCents int                  `gorm:"column:discount_cents;not null;default:0" json:"discount_cents"`
	TotalCents    int                  `gorm:"column:total_cents;not null" json:"total_cents"`
	AppliedCoupon *types.AppliedCoupon `gorm:"column:applied_coupon;type:jsonb;serializer:json" json:"applied_coupon,omitempty"`
	Items         []OrderLineItem      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ameedanxari/menumaker-backend/pkg/enums"
)

// Coupon is a discount definition owned by one business. Codes are
// case-sensitive. A percentage coupon's Value is whole percent; a fixed
// coupon's Value is minor currency units.
type Coupon struct {
	ID               uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BusinessID       uuid.UUID        `gorm:"column:business_id;type:uuid;not null;uniqueIndex:idx_coupon_business_code" json:"business_id"`
	Code             string           `gorm:"column:code;not null;uniqueIndex:idx_coupon_business_code" json:"code"`
	Type             enums.CouponType `gorm:"column:type;type:coupon_type;not null" json:"type"`
	Value            int              `gorm:"column:value;not null" json:"value"`
	MinOrderCents    *int             `gorm:"column:min_order_cents" json:"min_order_cents,omitempty"`
	MaxDiscountCents *int             `gorm:"column:max_discount_cents" json:"max_discount_cents,omitempty"`
	UsageLimit       *int             `gorm:"column:usage_limit" json:"usage_limit,omitempty"`
	UsageCount       int              `gorm:"column:usage_count;not null;default:0" json:"usage_count"`
	Active           bool             `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

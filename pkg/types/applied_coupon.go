package types

import (
	"github.com/google/uuid"
)

// AppliedCoupon is the snapshot of a coupon at order placement time, stored on
// the order as jsonb. Orders never re-evaluate the coupon after creation.
type AppliedCoupon struct {
	CouponID      uuid.UUID `json:"coupon_id"`
	Code          string    `json:"code"`
	Type          string    `json:"type"`
	DiscountCents int       `json:"discount_cents"`
}

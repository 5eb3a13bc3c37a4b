package coupons

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
	"github.com/ameedanxari/menumaker-backend/pkg/enums"
	pkgerrors "github.com/ameedanxari/menumaker-backend/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

// Evaluate computes the discount a coupon grants against an order subtotal,
// both in minor currency units. It is a pure function: no clock, no storage.
//
// Failure conditions are distinct codes rather than a zero discount so the
// caller can explain why a valid-looking coupon was refused: an inactive
// coupon, an exhausted usage limit, and a subtotal below the coupon's minimum
// each fail with their own code.
func Evaluate(coupon models.Coupon, subtotalCents int) (int, error) {
	if subtotalCents < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "subtotal must be non-negative")
	}
	if !coupon.Active {
		return 0, pkgerrors.New(pkgerrors.CodeCouponInactive, fmt.Sprintf("coupon %s is not active", coupon.Code))
	}
	if coupon.UsageLimit != nil && coupon.UsageCount >= *coupon.UsageLimit {
		return 0, pkgerrors.New(pkgerrors.CodeUsageLimitExceeded, fmt.Sprintf("coupon %s has reached its usage limit", coupon.Code))
	}
	if coupon.MinOrderCents != nil && subtotalCents < *coupon.MinOrderCents {
		return 0, pkgerrors.New(pkgerrors.CodeBelowMinimumOrder,
			fmt.Sprintf("order subtotal %d is below the coupon minimum %d", subtotalCents, *coupon.MinOrderCents))
	}

	switch coupon.Type {
	case enums.CouponTypePercentage:
		discount := decimal.NewFromInt(int64(subtotalCents)).
			Mul(decimal.NewFromInt(int64(coupon.Value))).
			Div(oneHundred).
			Floor()
		cents := int(discount.IntPart())
		if coupon.MaxDiscountCents != nil && cents > *coupon.MaxDiscountCents {
			cents = *coupon.MaxDiscountCents
		}
		return cents, nil
	case enums.CouponTypeFixed:
		// A coupon never discounts more than the subtotal.
		if coupon.Value > subtotalCents {
			return subtotalCents, nil
		}
		return coupon.Value, nil
	default:
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown coupon type %q", coupon.Type))
	}
}

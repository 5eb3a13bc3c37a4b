package coupons

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
	"github.com/ameedanxari/menumaker-backend/pkg/enums"
	pkgerrors "github.com/ameedanxari/menumaker-backend/pkg/errors"
)

func intPtr(v int) *int { return &v }

func TestEvaluateFixedCappedAtSubtotal(t *testing.T) {
	coupon := models.Coupon{
		Code:          "WELCOME700",
		Type:          enums.CouponTypeFixed,
		Value:         700,
		MinOrderCents: intPtr(500),
		Active:        true,
	}

	discount, err := Evaluate(coupon, 1000)
	require.NoError(t, err)
	require.Equal(t, 700, discount)

	discount, err = Evaluate(coupon, 600)
	require.NoError(t, err)
	require.Equal(t, 600, discount, "fixed discount never exceeds the subtotal")
}

func TestEvaluateBelowMinimumIsDistinctFromZeroDiscount(t *testing.T) {
	coupon := models.Coupon{
		Code:          "WELCOME700",
		Type:          enums.CouponTypeFixed,
		Value:         700,
		MinOrderCents: intPtr(500),
		Active:        true,
	}

	_, err := Evaluate(coupon, 300)
	require.Error(t, err)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeBelowMinimumOrder))
}

func TestEvaluatePercentage(t *testing.T) {
	coupon := models.Coupon{
		Code:   "TEN",
		Type:   enums.CouponTypePercentage,
		Value:  10,
		Active: true,
	}

	discount, err := Evaluate(coupon, 1000)
	require.NoError(t, err)
	require.Equal(t, 100, discount)

	// 10% of 1015 is 101.5; the discount rounds down to whole cents.
	discount, err = Evaluate(coupon, 1015)
	require.NoError(t, err)
	require.Equal(t, 101, discount)
}

func TestEvaluatePercentageClampedToMaxDiscount(t *testing.T) {
	coupon := models.Coupon{
		Code:             "BIG50",
		Type:             enums.CouponTypePercentage,
		Value:            50,
		MaxDiscountCents: intPtr(300),
		Active:           true,
	}

	discount, err := Evaluate(coupon, 10000)
	require.NoError(t, err)
	require.Equal(t, 300, discount)
}

func TestEvaluateInactiveCoupon(t *testing.T) {
	coupon := models.Coupon{Code: "OLD", Type: enums.CouponTypeFixed, Value: 100, Active: false}

	_, err := Evaluate(coupon, 1000)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeCouponInactive))
}

func TestEvaluateUsageLimitExhausted(t *testing.T) {
	coupon := models.Coupon{
		Code:       "LIMITED",
		Type:       enums.CouponTypeFixed,
		Value:      100,
		UsageLimit: intPtr(5),
		UsageCount: 5,
		Active:     true,
	}

	_, err := Evaluate(coupon, 1000)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeUsageLimitExceeded))
}

func TestEvaluateNegativeSubtotalRejected(t *testing.T) {
	coupon := models.Coupon{Code: "TEN", Type: enums.CouponTypePercentage, Value: 10, Active: true}
	_, err := Evaluate(coupon, -1)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ameedanxari/menumaker-backend/api/responses"
	"github.com/ameedanxari/menumaker-backend/api/validators"
	"github.com/ameedanxari/menumaker-backend/internal/coupons"
	"github.com/ameedanxari/menumaker-backend/pkg/enums"
	pkgerrors "github.com/ameedanxari/menumaker-backend/pkg/errors"
	"github.com/ameedanxari/menumaker-backend/pkg/logger"
)

type couponCreateRequest struct {
	BusinessID       uuid.UUID `json:"business_id" validate:"required"`
	Code             string    `json:"code" validate:"required"`
	Type             string    `json:"type" validate:"required"`
	Value            int       `json:"value" validate:"required,min=1"`
	MinOrderCents    *int      `json:"min_order_cents,omitempty"`
	MaxDiscountCents *int      `json:"max_discount_cents,omitempty"`
	UsageLimit       *int      `json:"usage_limit,omitempty"`
	Active           bool      `json:"active"`
}

type couponValidateRequest struct {
	BusinessID      uuid.UUID `json:"business_id" validate:"required"`
	Code            string    `json:"code"`
	SubtotalCents   int       `json:"subtotal_cents" validate:"min=0"`
	OwnReferralCode string    `json:"own_referral_code,omitempty"`
}

// CouponList returns the business's coupons.
func CouponList(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := validators.ParseQueryUUID(r, "business_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), businessID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// CouponCreate registers a new coupon for the business.
func CouponCreate(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req couponCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		couponType, err := enums.ParseCouponType(req.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid coupon type"))
			return
		}

		created, err := svc.Create(r.Context(), coupons.CreateCouponInput{
			BusinessID:       req.BusinessID,
			Code:             strings.TrimSpace(req.Code),
			Type:             couponType,
			Value:            req.Value,
			MinOrderCents:    req.MinOrderCents,
			MaxDiscountCents: req.MaxDiscountCents,
			UsageLimit:       req.UsageLimit,
			Active:           req.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// CouponDelete removes a coupon by id.
func CouponDelete(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID := strings.TrimSpace(chi.URLParam(r, "couponId"))
		couponID, err := uuid.Parse(rawID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid coupon id"))
			return
		}

		if err := svc.Delete(r.Context(), couponID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CouponValidate evaluates a code against a subtotal without consuming a use.
func CouponValidate(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req couponValidateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		redemption, err := svc.Redeem(r.Context(), coupons.RedeemInput{
			BusinessID:      req.BusinessID,
			Code:            req.Code,
			SubtotalCents:   req.SubtotalCents,
			OwnReferralCode: req.OwnReferralCode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, redemption)
	}
}

package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ameedanxari/menumaker-backend/api/responses"
	"github.com/ameedanxari/menumaker-backend/api/validators"
	"github.com/ameedanxari/menumaker-backend/internal/checkout"
	"github.com/ameedanxari/menumaker-backend/internal/payments"
	"github.com/ameedanxari/menumaker-backend/pkg/enums"
	pkgerrors "github.com/ameedanxari/menumaker-backend/pkg/errors"
	"github.com/ameedanxari/menumaker-backend/pkg/logger"
)

type paymentPayload struct {
	Method     string `json:"method" validate:"required"`
	CardNumber string `json:"card_number,omitempty"`
	Expiry     string `json:"expiry,omitempty"`
	CVV        string `json:"cvv,omitempty"`
	Holder     string `json:"holder,omitempty"`
	UPIID      string `json:"upi_id,omitempty"`
	SaveCard   bool   `json:"save_card,omitempty"`
}

type quoteRequest struct {
	BusinessID      uuid.UUID       `json:"business_id" validate:"required"`
	CouponCode      string          `json:"coupon_code,omitempty"`
	OwnReferralCode string          `json:"own_referral_code,omitempty"`
	Payment         *paymentPayload `json:"payment,omitempty"`
}

type placeOrderRequest struct {
	BusinessID      uuid.UUID      `json:"business_id" validate:"required"`
	CustomerID      uuid.UUID      `json:"customer_id" validate:"required"`
	CustomerName    string         `json:"customer_name" validate:"required"`
	CustomerPhone   *string        `json:"customer_phone,omitempty"`
	CouponCode      string         `json:"coupon_code,omitempty"`
	OwnReferralCode string         `json:"own_referral_code,omitempty"`
	Payment         paymentPayload `json:"payment" validate:"required"`
}

// CheckoutQuote prices the cart with an optional coupon and payment state.
func CheckoutQuote(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req quoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var draft *payments.Draft
		if req.Payment != nil {
			built, err := draftFromPayload(*req.Payment)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			draft = built
		}

		quote, err := svc.Quote(r.Context(), checkout.QuoteInput{
			BusinessID:      req.BusinessID,
			CouponCode:      req.CouponCode,
			OwnReferralCode: req.OwnReferralCode,
			Draft:           draft,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CheckoutPlace freezes the cart into an order.
func CheckoutPlace(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req placeOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := draftFromPayload(req.Payment)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), checkout.PlaceOrderInput{
			BusinessID:      req.BusinessID,
			CustomerID:      req.CustomerID,
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CouponCode:      req.CouponCode,
			OwnReferralCode: req.OwnReferralCode,
			Draft:           draft,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// draftFromPayload replays the payload through the form's setters so the
// same normalization and field errors apply on the server path. Field errors
// are reported but do not block a quote; PlaceOrder rejects on CanSubmit.
func draftFromPayload(p paymentPayload) (*payments.Draft, error) {
	method, err := enums.ParsePaymentMethod(p.Method)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}

	draft := payments.NewDraft()
	draft.SetMethod(method)
	switch method {
	case enums.PaymentMethodCard:
		draft.SetCardNumber(p.CardNumber)
		draft.SetExpiry(p.Expiry)
		draft.SetCVV(p.CVV)
		draft.SetHolder(p.Holder)
		draft.SetSaveCard(p.SaveCard)
	case enums.PaymentMethodUPI:
		draft.SetUPIID(p.UPIID)
	}
	return draft, nil
}

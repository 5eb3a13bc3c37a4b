package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ameedanxari/menumaker-backend/internal/cart"
	"github.com/ameedanxari/menumaker-backend/internal/coupons"
	"github.com/ameedanxari/menumaker-backend/internal/orders"
	"github.com/ameedanxari/menumaker-backend/internal/payments"
	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
	"github.com/ameedanxari/menumaker-backend/pkg/enums"
	pkgerrors "github.com/ameedanxari/menumaker-backend/pkg/errors"
	"github.com/ameedanxari/menumaker-backend/pkg/metrics"
	"github.com/ameedanxari/menumaker-backend/pkg/types"
)

// Service assembles the cart, an optional coupon, and the payment draft into
// a quote, and turns an accepted quote into an immutable order snapshot.
type Service interface {
	Quote(ctx context.Context, input QuoteInput) (*Quote, error)
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error)
}

type service struct {
	cartRepo   cart.Repository
	coupons    coupons.Service
	ordersRepo orders.Repository
	metrics    *metrics.DomainMetrics
}

// NewService builds the checkout service. Metrics are optional.
func NewService(cartRepo cart.Repository, couponSvc coupons.Service, ordersRepo orders.Repository, m *metrics.DomainMetrics) (Service, error) {
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if couponSvc == nil {
		return nil, fmt.Errorf("coupon service required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{cartRepo: cartRepo, coupons: couponSvc, ordersRepo: ordersRepo, metrics: m}, nil
}

// QuoteInput identifies the cart and the optional coupon to price.
type QuoteInput struct {
	BusinessID uuid.UUID
	// CouponCode is optional; blank means no coupon on this quote.
	CouponCode string
	// OwnReferralCode guards against redeeming one's own code.
	OwnReferralCode string
	// Draft gates CanPay; a nil draft quotes the money without payment state.
	Draft *payments.Draft
}

// Quote is the priced view of the current cart.
type Quote struct {
	Items         []models.CartItem    `json:"items"`
	SubtotalCents int                  `json:"subtotal_cents"`
	DiscountCents int                  `json:"discount_cents"`
	TotalCents    int                  `json:"total_cents"`
	Coupon        *coupons.Redemption  `json:"-"`
	AppliedCoupon *types.AppliedCoupon `json:"applied_coupon,omitempty"`
	CanPay        bool                 `json:"can_pay"`
}

// Quote prices the cart with the optional coupon applied. A failing coupon
// fails the whole quote so the caller can surface the exact rejection rather
// than silently pricing without the discount.
func (s *service) Quote(ctx context.Context, input QuoteInput) (*Quote, error) {
	if input.BusinessID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business id required")
	}

	items, err := s.cartRepo.GetCartItems(ctx, input.BusinessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	quote := &Quote{
		Items:         items,
		SubtotalCents: cart.SubtotalCents(items),
	}

	if input.CouponCode != "" {
		redemption, err := s.coupons.Redeem(ctx, coupons.RedeemInput{
			BusinessID:      input.BusinessID,
			Code:            input.CouponCode,
			SubtotalCents:   quote.SubtotalCents,
			OwnReferralCode: input.OwnReferralCode,
		})
		if err != nil {
			return nil, err
		}
		quote.Coupon = redemption
		quote.DiscountCents = redemption.DiscountCents
		quote.AppliedCoupon = &types.AppliedCoupon{
			CouponID:      redemption.Coupon.ID,
			Code:          redemption.Coupon.Code,
			Type:          redemption.Coupon.Type.String(),
			DiscountCents: redemption.DiscountCents,
		}
	}

	quote.TotalCents = quote.SubtotalCents - quote.DiscountCents
	if input.Draft != nil {
		quote.CanPay = input.Draft.CanSubmit()
	}
	return quote, nil
}

// PlaceOrderInput carries everything needed to freeze the cart into an order.
type PlaceOrderInput struct {
	BusinessID      uuid.UUID
	CustomerID      uuid.UUID
	CustomerName    string
	CustomerPhone   *string
	CouponCode      string
	OwnReferralCode string
	Draft           *payments.Draft
}

// PlaceOrder re-prices the cart, freezes it into an order snapshot, consumes
// the coupon use, and clears the cart. The stored order never re-evaluates
// its coupon.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if input.CustomerName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if input.Draft == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment details required")
	}

	quote, err := s.Quote(ctx, QuoteInput{
		BusinessID:      input.BusinessID,
		CouponCode:      input.CouponCode,
		OwnReferralCode: input.OwnReferralCode,
		Draft:           input.Draft,
	})
	if err != nil {
		return nil, err
	}
	if len(quote.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if !quote.CanPay {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment details incomplete")
	}

	order := &models.Order{
		BusinessID:    input.BusinessID,
		CustomerID:    input.CustomerID,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		Status:        enums.OrderStatusPending,
		PaymentMethod: input.Draft.Method(),
		SubtotalCents: quote.SubtotalCents,
		DiscountCents: quote.DiscountCents,
		TotalCents:    quote.TotalCents,
		AppliedCoupon: quote.AppliedCoupon,
		Items:         lineItems(quote.Items),
	}

	created, err := s.ordersRepo.CreateOrder(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	if quote.Coupon != nil {
		if err := s.coupons.MarkRedeemed(ctx, quote.Coupon.Coupon); err != nil {
			return nil, err
		}
	}
	if err := s.cartRepo.ClearCart(ctx, input.BusinessID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}

	s.metrics.IncOrderPlaced()
	return created, nil
}

// lineItems freezes cart lines into order line snapshots.
func lineItems(items []models.CartItem) []models.OrderLineItem {
	out := make([]models.OrderLineItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.OrderLineItem{
			DishID:         item.DishID,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			TotalCents:     item.LineTotalCents(),
		})
	}
	return out
}

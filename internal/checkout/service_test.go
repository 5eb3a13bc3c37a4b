package checkout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ameedanxari/menumaker-backend/internal/cart"
	"github.com/ameedanxari/menumaker-backend/internal/coupons"
	"github.com/ameedanxari/menumaker-backend/internal/orders"
	"github.com/ameedanxari/menumaker-backend/internal/payments"
	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
	"github.com/ameedanxari/menumaker-backend/pkg/enums"
	pkgerrors "github.com/ameedanxari/menumaker-backend/pkg/errors"
	"github.com/ameedanxari/menumaker-backend/pkg/pagination"
)

type stubCartRepo struct {
	items   []models.CartItem
	cleared bool
}

func (s *stubCartRepo) AddToCart(ctx context.Context, item models.CartItem) (*models.CartItem, error) {
	return &item, nil
}

func (s *stubCartRepo) UpdateCartItem(ctx context.Context, item models.CartItem) (*models.CartItem, error) {
	return &item, nil
}

func (s *stubCartRepo) RemoveFromCart(ctx context.Context, businessID uuid.UUID, dishID string) error {
	return nil
}

func (s *stubCartRepo) ClearCart(ctx context.Context, businessID uuid.UUID) error {
	s.cleared = true
	return nil
}

func (s *stubCartRepo) GetCartItems(ctx context.Context, businessID uuid.UUID) ([]models.CartItem, error) {
	return s.items, nil
}

func (s *stubCartRepo) GetCartTotal(ctx context.Context, businessID uuid.UUID) (int, error) {
	return cart.SubtotalCents(s.items), nil
}

type stubCouponService struct {
	redemption *coupons.Redemption
	redeemErr  error
	marked     []uuid.UUID
}

func (s *stubCouponService) Redeem(ctx context.Context, input coupons.RedeemInput) (*coupons.Redemption, error) {
	if s.redeemErr != nil {
		return nil, s.redeemErr
	}
	return s.redemption, nil
}

func (s *stubCouponService) MarkRedeemed(ctx context.Context, coupon models.Coupon) error {
	s.marked = append(s.marked, coupon.ID)
	return nil
}

func (s *stubCouponService) List(ctx context.Context, businessID uuid.UUID) ([]models.Coupon, error) {
	return nil, nil
}

func (s *stubCouponService) Create(ctx context.Context, input coupons.CreateCouponInput) (*models.Coupon, error) {
	return nil, nil
}

func (s *stubCouponService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubOrdersRepo struct {
	created *models.Order
}

func (s *stubOrdersRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.ID = uuid.New()
	s.created = order
	return order, nil
}

func (s *stubOrdersRepo) GetOrdersByBusiness(ctx context.Context, businessID uuid.UUID, params pagination.Params) (*orders.OrderList, error) {
	return &orders.OrderList{}, nil
}

func (s *stubOrdersRepo) GetCustomerOrders(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*orders.OrderList, error) {
	return &orders.OrderList{}, nil
}

func (s *stubOrdersRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.created, nil
}

func (s *stubOrdersRepo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	return s.created, nil
}

func twoLines() []models.CartItem {
	businessID := uuid.New()
	return []models.CartItem{
		{BusinessID: businessID, DishID: "dish-1", Name: "Paneer Tikka", Quantity: 2, UnitPriceCents: 450},
		{BusinessID: businessID, DishID: "dish-2", Name: "Garlic Naan", Quantity: 1, UnitPriceCents: 100},
	}
}

func readyCardDraft() *payments.Draft {
	d := payments.NewDraft()
	d.SetMethod(enums.PaymentMethodCard)
	d.SetCardNumber("4111111111111111")
	d.SetExpiry("12/30")
	d.SetCVV("123")
	d.SetHolder("Asha Verma")
	return d
}

func newTestCheckout(t *testing.T, cartRepo cart.Repository, couponSvc coupons.Service, ordersRepo orders.Repository) Service {
	t.Helper()
	svc, err := NewService(cartRepo, couponSvc, ordersRepo, nil)
	require.NoError(t, err)
	return svc
}

func TestQuoteWithoutCoupon(t *testing.T) {
	cartRepo := &stubCartRepo{items: twoLines()}
	svc := newTestCheckout(t, cartRepo, &stubCouponService{}, &stubOrdersRepo{})

	quote, err := svc.Quote(context.Background(), QuoteInput{BusinessID: uuid.New(), Draft: payments.NewDraft()})
	require.NoError(t, err)
	require.Equal(t, 1000, quote.SubtotalCents)
	require.Zero(t, quote.DiscountCents)
	require.Equal(t, 1000, quote.TotalCents)
	require.True(t, quote.CanPay, "cash needs no details")
}

func TestQuoteAppliesCoupon(t *testing.T) {
	coupon := models.Coupon{ID: uuid.New(), Code: "TEN", Type: enums.CouponTypePercentage, Value: 10, Active: true}
	couponSvc := &stubCouponService{redemption: &coupons.Redemption{Coupon: coupon, DiscountCents: 100}}
	svc := newTestCheckout(t, &stubCartRepo{items: twoLines()}, couponSvc, &stubOrdersRepo{})

	quote, err := svc.Quote(context.Background(), QuoteInput{BusinessID: uuid.New(), CouponCode: "TEN"})
	require.NoError(t, err)
	require.Equal(t, 100, quote.DiscountCents)
	require.Equal(t, 900, quote.TotalCents)
	require.NotNil(t, quote.AppliedCoupon)
	require.Equal(t, "TEN", quote.AppliedCoupon.Code)
}

func TestQuoteFailsWhenCouponRejected(t *testing.T) {
	couponSvc := &stubCouponService{redeemErr: pkgerrors.New(pkgerrors.CodeCouponInactive, "coupon is not active")}
	svc := newTestCheckout(t, &stubCartRepo{items: twoLines()}, couponSvc, &stubOrdersRepo{})

	_, err := svc.Quote(context.Background(), QuoteInput{BusinessID: uuid.New(), CouponCode: "OLD"})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeCouponInactive),
		"a rejected coupon fails the quote instead of silently dropping the discount")
}

func TestPlaceOrderFreezesSnapshot(t *testing.T) {
	cartRepo := &stubCartRepo{items: twoLines()}
	coupon := models.Coupon{ID: uuid.New(), Code: "TEN", Type: enums.CouponTypePercentage, Value: 10, Active: true}
	couponSvc := &stubCouponService{redemption: &coupons.Redemption{Coupon: coupon, DiscountCents: 100}}
	ordersRepo := &stubOrdersRepo{}
	svc := newTestCheckout(t, cartRepo, couponSvc, ordersRepo)

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		BusinessID:   uuid.New(),
		CustomerID:   uuid.New(),
		CustomerName: "Asha Verma",
		CouponCode:   "TEN",
		Draft:        readyCardDraft(),
	})
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusPending, order.Status)
	require.Equal(t, enums.PaymentMethodCard, order.PaymentMethod)
	require.Equal(t, 1000, order.SubtotalCents)
	require.Equal(t, 100, order.DiscountCents)
	require.Equal(t, 900, order.TotalCents)
	require.Len(t, order.Items, 2)
	require.Equal(t, 900, order.Items[0].TotalCents)
	require.NotNil(t, order.AppliedCoupon)

	require.Equal(t, []uuid.UUID{coupon.ID}, couponSvc.marked, "placement consumes the coupon use")
	require.True(t, cartRepo.cleared, "placement clears the cart")
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc := newTestCheckout(t, &stubCartRepo{}, &stubCouponService{}, &stubOrdersRepo{})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		BusinessID:   uuid.New(),
		CustomerID:   uuid.New(),
		CustomerName: "Asha Verma",
		Draft:        payments.NewDraft(),
	})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestPlaceOrderIncompletePayment(t *testing.T) {
	draft := payments.NewDraft()
	draft.SetMethod(enums.PaymentMethodCard)
	svc := newTestCheckout(t, &stubCartRepo{items: twoLines()}, &stubCouponService{}, &stubOrdersRepo{})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		BusinessID:   uuid.New(),
		CustomerID:   uuid.New(),
		CustomerName: "Asha Verma",
		Draft:        draft,
	})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

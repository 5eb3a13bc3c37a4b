package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
	pkgerrors "github.com/ameedanxari/menumaker-backend/pkg/errors"
	"github.com/ameedanxari/menumaker-backend/pkg/metrics"
)

// usageCounter is the redis surface the service needs for live usage counts.
type usageCounter interface {
	CouponUsageKey(couponID string) string
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	GetInt(ctx context.Context, key string) (int64, error)
}

// Service validates and redeems coupon codes.
type Service interface {
	Redeem(ctx context.Context, input RedeemInput) (*Redemption, error)
	MarkRedeemed(ctx context.Context, coupon models.Coupon) error
	List(ctx context.Context, businessID uuid.UUID) ([]models.Coupon, error)
	Create(ctx context.Context, input CreateCouponInput) (*models.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo       Repository
	counter    usageCounter
	counterTTL time.Duration
	metrics    *metrics.DomainMetrics
}

// NewService builds the coupon service. The usage counter and metrics are
// optional; without a counter the persisted usage_count alone gates the limit.
func NewService(repo Repository, counter usageCounter, counterTTL time.Duration, m *metrics.DomainMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	return &service{
		repo:       repo,
		counter:    counter,
		counterTTL: counterTTL,
		metrics:    m,
	}, nil
}

// RedeemInput carries everything needed to validate a code locally before
// touching storage.
type RedeemInput struct {
	BusinessID    uuid.UUID
	Code          string
	SubtotalCents int
	// OwnReferralCode is the caller's cached referral code. Redeeming one's
	// own code is refused before any repository call.
	OwnReferralCode string
}

// Redemption is the successful outcome: the coupon and the discount it grants.
type Redemption struct {
	Coupon        models.Coupon `json:"coupon"`
	DiscountCents int           `json:"discount_cents"`
}

// Redeem runs the local guard clauses, loads the coupon, overlays the live
// usage count, and evaluates the discount. It does not consume a use; call
// MarkRedeemed once the order is placed.
func (s *service) Redeem(ctx context.Context, input RedeemInput) (*Redemption, error) {
	code := input.Code
	if strings.TrimSpace(code) == "" {
		s.countOutcome("empty_code")
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCode, "coupon code is required")
	}
	if input.OwnReferralCode != "" && code == input.OwnReferralCode {
		s.countOutcome("self_use")
		return nil, pkgerrors.New(pkgerrors.CodeSelfUseProhibited, "you cannot redeem your own code")
	}
	if input.BusinessID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business id required")
	}

	coupon, err := s.repo.GetByCode(ctx, input.BusinessID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.countOutcome("not_found")
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}

	withLiveUsage := *coupon
	if live, ok := s.liveUsage(ctx, coupon.ID); ok && live > withLiveUsage.UsageCount {
		withLiveUsage.UsageCount = live
	}

	discount, err := Evaluate(withLiveUsage, input.SubtotalCents)
	if err != nil {
		s.countOutcome("rejected")
		return nil, err
	}

	s.countOutcome("accepted")
	return &Redemption{Coupon: *coupon, DiscountCents: discount}, nil
}

// MarkRedeemed consumes one use of the coupon in both storage and the live
// counter.
func (s *service) MarkRedeemed(ctx context.Context, coupon models.Coupon) error {
	if err := s.repo.IncrementUsage(ctx, coupon.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment coupon usage")
	}
	if s.counter != nil {
		key := s.counter.CouponUsageKey(coupon.ID.String())
		if _, err := s.counter.IncrWithTTL(ctx, key, s.counterTTL); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment live usage counter")
		}
	}
	return nil
}

func (s *service) List(ctx context.Context, businessID uuid.UUID) ([]models.Coupon, error) {
	if businessID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business id required")
	}
	coupons, err := s.repo.GetCoupons(ctx, businessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}
	return coupons, nil
}

func (s *service) Create(ctx context.Context, input CreateCouponInput) (*models.Coupon, error) {
	if input.BusinessID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business id required")
	}
	if strings.TrimSpace(input.Code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid coupon type %q", input.Type))
	}
	if input.Value <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon value must be positive")
	}

	coupon, err := s.repo.CreateCoupon(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "coupon code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create coupon")
	}
	return coupon, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "coupon id required")
	}
	if err := s.repo.DeleteCoupon(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete coupon")
	}
	return nil
}

func (s *service) liveUsage(ctx context.Context, couponID uuid.UUID) (int, bool) {
	if s.counter == nil {
		return 0, false
	}
	count, err := s.counter.GetInt(ctx, s.counter.CouponUsageKey(couponID.String()))
	if err != nil {
		// The persisted count still gates the limit; a cold counter is not fatal.
		return 0, false
	}
	return int(count), true
}

func (s *service) countOutcome(outcome string) {
	s.metrics.IncCouponRedemption(outcome)
}

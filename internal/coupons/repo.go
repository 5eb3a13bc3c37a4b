package coupons

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ameedanxari/menumaker-backend/internal/repo"
	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
	"github.com/ameedanxari/menumaker-backend/pkg/enums"
)

// CreateCouponInput is the explicit, statically typed creation payload. Every
// field is named; there is no loose map construction anywhere on this path.
type CreateCouponInput struct {
	BusinessID       uuid.UUID
	Code             string
	Type             enums.CouponType
	Value            int
	MinOrderCents    *int
	MaxDiscountCents *int
	UsageLimit       *int
	Active           bool
}

// Repository defines persistence operations for coupons.
type Repository interface {
	GetCoupons(ctx context.Context, businessID uuid.UUID) ([]models.Coupon, error)
	GetByCode(ctx context.Context, businessID uuid.UUID, code string) (*models.Coupon, error)
	CreateCoupon(ctx context.Context, input CreateCouponInput) (*models.Coupon, error)
	DeleteCoupon(ctx context.Context, id uuid.UUID) error
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	repo.Base
}

// NewRepository builds a coupon repository on the provided connection.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) GetCoupons(ctx context.Context, businessID uuid.UUID) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := r.DB(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&coupons).Error
	if err != nil {
		return nil, err
	}
	return coupons, nil
}

// GetByCode matches the code case-sensitively.
func (r *repository) GetByCode(ctx context.Context, businessID uuid.UUID, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.DB(ctx).
		Where("business_id = ? AND code = ?", businessID, code).
		First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *repository) CreateCoupon(ctx context.Context, input CreateCouponInput) (*models.Coupon, error) {
	coupon := models.Coupon{
		BusinessID:       input.BusinessID,
		Code:             input.Code,
		Type:             input.Type,
		Value:            input.Value,
		MinOrderCents:    input.MinOrderCents,
		MaxDiscountCents: input.MaxDiscountCents,
		UsageLimit:       input.UsageLimit,
		Active:           input.Active,
	}
	if err := r.DB(ctx).Create(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *repository) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&models.Coupon{}).Error
}

func (r *repository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).
		Model(&models.Coupon{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}

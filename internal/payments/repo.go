package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ameedanxari/menumaker-backend/internal/repo"
	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
)

// Repository defines persistence operations for processors and payouts.
type Repository interface {
	GetProcessors(ctx context.Context, businessID uuid.UUID) ([]models.PaymentProcessor, error)
	ConnectProcessor(ctx context.Context, businessID uuid.UUID, name string) (*models.PaymentProcessor, error)
	GetPayouts(ctx context.Context, businessID uuid.UUID) ([]models.Payout, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a payments repository on the provided connection.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) GetProcessors(ctx context.Context, businessID uuid.UUID) ([]models.PaymentProcessor, error) {
	var processors []models.PaymentProcessor
	err := r.DB(ctx).
		Where("business_id = ?", businessID).
		Order("name ASC").
		Find(&processors).Error
	if err != nil {
		return nil, err
	}
	return processors, nil
}

// ConnectProcessor marks the named processor connected, creating the row when
// the business has never touched it. Reconnecting refreshes connected_at.
func (r *repository) ConnectProcessor(ctx context.Context, businessID uuid.UUID, name string) (*models.PaymentProcessor, error) {
	now := time.Now().UTC()
	processor := models.PaymentProcessor{
		BusinessID:  businessID,
		Name:        name,
		Connected:   true,
		ConnectedAt: &now,
	}
	err := r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "business_id"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"connected", "connected_at", "updated_at"}),
		}).
		Create(&processor).Error
	if err != nil {
		return nil, err
	}

	var saved models.PaymentProcessor
	err = r.DB(ctx).
		Where("business_id = ? AND name = ?", businessID, name).
		First(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *repository) GetPayouts(ctx context.Context, businessID uuid.UUID) ([]models.Payout, error) {
	var payouts []models.Payout
	err := r.DB(ctx).
		Where("business_id = ?", businessID).
		Order("period_end DESC").
		Find(&payouts).Error
	if err != nil {
		return nil, err
	}
	return payouts, nil
}

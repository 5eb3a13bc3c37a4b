package referrals

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ameedanxari/menumaker-backend/internal/repo"
	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
	"github.com/ameedanxari/menumaker-backend/pkg/pagination"
)

// Repository defines persistence operations for referral accounts and events.
type Repository interface {
	GetAccount(ctx context.Context, userID uuid.UUID) (*models.ReferralAccount, error)
	GetAccountByCode(ctx context.Context, code string) (*models.ReferralAccount, error)
	RecordEvent(ctx context.Context, event *models.ReferralEvent) (*models.ReferralEvent, error)
	GetHistory(ctx context.Context, userID uuid.UUID, params pagination.Params) (*EventList, error)
}

// EventList wraps one page of referral events plus the next cursor.
type EventList struct {
	Events     []models.ReferralEvent `json:"events"`
	NextCursor string                 `json:"next_cursor,omitempty"`
}

type repository struct {
	repo.Base
}

// NewRepository builds a referrals repository on the provided connection.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) GetAccount(ctx context.Context, userID uuid.UUID) (*models.ReferralAccount, error) {
	var account models.ReferralAccount
	err := r.DB(ctx).Where("user_id = ?", userID).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountByCode matches the code case-sensitively.
func (r *repository) GetAccountByCode(ctx context.Context, code string) (*models.ReferralAccount, error) {
	var account models.ReferralAccount
	err := r.DB(ctx).Where("code = ?", code).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// RecordEvent inserts the event and bumps the referrer's counters in one
// transaction.
func (r *repository) RecordEvent(ctx context.Context, event *models.ReferralEvent) (*models.ReferralEvent, error) {
	err := r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"total_referrals": gorm.Expr("total_referrals + 1"),
		}
		if event.Successful {
			updates["successful_referrals"] = gorm.Expr("successful_referrals + 1")
			updates["earnings_cents"] = gorm.Expr("earnings_cents + ?", event.RewardCents)
		} else {
			updates["pending_referrals"] = gorm.Expr("pending_referrals + 1")
		}
		return tx.Model(&models.ReferralAccount{}).
			Where("user_id = ?", event.ReferrerUserID).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *repository) GetHistory(ctx context.Context, userID uuid.UUID, params pagination.Params) (*EventList, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	query := r.DB(ctx).
		Where("referrer_user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.ReferralEvent
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &EventList{Events: rows}
	if len(rows) > limit {
		list.Events = rows[:limit]
		last := list.Events[limit-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return list, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// ReferralAccount holds one user's referral code and cumulative counters.
// Counters only move in response to the referral service's responses.
type ReferralAccount struct {
	UserID              uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Code                string    `gorm:"column:code;not null;uniqueIndex" json:"code"`
	TotalReferrals      int       `gorm:"column:total_referrals;not null;default:0" json:"total_referrals"`
	SuccessfulReferrals int       `gorm:"column:successful_referrals;not null;default:0" json:"successful_referrals"`
	PendingReferrals    int       `gorm:"column:pending_referrals;not null;default:0" json:"pending_referrals"`
	EarningsCents       int       `gorm:"column:earnings_cents;not null;default:0" json:"earnings_cents"`
	LeaderboardRank     *int      `gorm:"column:leaderboard_rank" json:"leaderboard_rank,omitempty"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// ReferralEvent is one row of a user's referral history.
type ReferralEvent struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReferrerUserID uuid.UUID `gorm:"column:referrer_user_id;type:uuid;not null" json:"referrer_user_id"`
	RefereeUserID  uuid.UUID `gorm:"column:referee_user_id;type:uuid;not null" json:"referee_user_id"`
	Code           string    `gorm:"column:code;not null" json:"code"`
	RewardCents    int       `gorm:"column:reward_cents;not null;default:0" json:"reward_cents"`
	Successful     bool      `gorm:"column:successful;not null;default:false" json:"successful"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

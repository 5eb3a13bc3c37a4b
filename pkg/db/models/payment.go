package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ameedanxari/menumaker-backend/pkg/enums"
)

// PaymentProcessor is an opaque processor row a business can connect. No
// processor SDK is integrated here; connection state is all this core tracks.
type PaymentProcessor struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BusinessID  uuid.UUID  `gorm:"column:business_id;type:uuid;not null;uniqueIndex:idx_processor_business_name" json:"business_id"`
	Name        string     `gorm:"column:name;not null;uniqueIndex:idx_processor_business_name" json:"name"`
	Connected   bool       `gorm:"column:connected;not null;default:false" json:"connected"`
	ConnectedAt *time.Time `gorm:"column:connected_at" json:"connected_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// Payout is a settlement owed to a business for delivered orders.
type Payout struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BusinessID  uuid.UUID          `gorm:"column:business_id;type:uuid;not null" json:"business_id"`
	AmountCents int                `gorm:"column:amount_cents;not null" json:"amount_cents"`
	Status      enums.PayoutStatus `gorm:"column:status;type:payout_status;not null;default:'pending'" json:"status"`
	PeriodStart time.Time          `gorm:"column:period_start;not null" json:"period_start"`
	PeriodEnd   time.Time          `gorm:"column:period_end;not null" json:"period_end"`
	PaidAt      *time.Time         `gorm:"column:paid_at" json:"paid_at,omitempty"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderLineItem captures the snapshot of each dish within an order.
type OrderLineItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null" json:"order_id"`
	DishID         string    `gorm:"column:dish_id;not null" json:"dish_id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	Quantity       int       `gorm:"column:quantity;not null" json:"quantity"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null" json:"unit_price_cents"`
	TotalCents     int       `gorm:"column:total_cents;not null" json:"total_cents"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

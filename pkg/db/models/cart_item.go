package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one dish line in a customer's per-business cart. Dish identity
// is the menu's external dish id; (business_id, dish_id) is unique per cart.
type CartItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BusinessID     uuid.UUID `gorm:"column:business_id;type:uuid;not null;uniqueIndex:idx_cart_business_dish" json:"business_id"`
	DishID         string    `gorm:"column:dish_id;not null;uniqueIndex:idx_cart_business_dish" json:"dish_id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	Quantity       int       `gorm:"column:quantity;not null" json:"quantity"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null" json:"unit_price_cents"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// LineTotalCents is quantity times unit price in minor currency units.
func (c CartItem) LineTotalCents() int {
	return c.Quantity * c.UnitPriceCents
}

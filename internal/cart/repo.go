package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ameedanxari/menumaker-backend/internal/repo"
	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
)

// Repository defines persistence operations for the per-business cart.
type Repository interface {
	AddToCart(ctx context.Context, item models.CartItem) (*models.CartItem, error)
	UpdateCartItem(ctx context.Context, item models.CartItem) (*models.CartItem, error)
	RemoveFromCart(ctx context.Context, businessID uuid.UUID, dishID string) error
	ClearCart(ctx context.Context, businessID uuid.UUID) error
	GetCartItems(ctx context.Context, businessID uuid.UUID) ([]models.CartItem, error)
	GetCartTotal(ctx context.Context, businessID uuid.UUID) (int, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a cart repository on the provided connection.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

// AddToCart inserts the line or, when the dish is already in the business's
// cart, replaces it wholesale.
func (r *repository) AddToCart(ctx context.Context, item models.CartItem) (*models.CartItem, error) {
	err := r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "business_id"}, {Name: "dish_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "quantity", "unit_price_cents", "updated_at",
			}),
		}).
		Create(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem persists the forwarded line. Quantity zero or below is where
// deletion happens: the session aggregator forwards quantities unchanged and
// this layer owns the zero-means-remove decision.
func (r *repository) UpdateCartItem(ctx context.Context, item models.CartItem) (*models.CartItem, error) {
	if item.Quantity <= 0 {
		if err := r.RemoveFromCart(ctx, item.BusinessID, item.DishID); err != nil {
			return nil, err
		}
		item.Quantity = 0
		return &item, nil
	}

	err := r.DB(ctx).
		Model(&models.CartItem{}).
		Where("business_id = ? AND dish_id = ?", item.BusinessID, item.DishID).
		Updates(map[string]any{
			"quantity":         item.Quantity,
			"unit_price_cents": item.UnitPriceCents,
			"name":             item.Name,
		}).Error
	if err != nil {
		return nil, err
	}

	var updated models.CartItem
	err = r.DB(ctx).
		Where("business_id = ? AND dish_id = ?", item.BusinessID, item.DishID).
		First(&updated).Error
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) RemoveFromCart(ctx context.Context, businessID uuid.UUID, dishID string) error {
	return r.DB(ctx).
		Where("business_id = ? AND dish_id = ?", businessID, dishID).
		Delete(&models.CartItem{}).Error
}

// ClearCart removes every line for the business; other businesses' carts are
// untouched.
func (r *repository) ClearCart(ctx context.Context, businessID uuid.UUID) error {
	return r.DB(ctx).
		Where("business_id = ?", businessID).
		Delete(&models.CartItem{}).Error
}

func (r *repository) GetCartItems(ctx context.Context, businessID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.DB(ctx).
		Where("business_id = ?", businessID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) GetCartTotal(ctx context.Context, businessID uuid.UUID) (int, error) {
	var total *int
	err := r.DB(ctx).
		Model(&models.CartItem{}).
		Select("SUM(quantity * unit_price_cents)").
		Where("business_id = ?", businessID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

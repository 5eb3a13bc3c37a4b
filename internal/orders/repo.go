package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ameedanxari/menumaker-backend/internal/repo"
	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
	"github.com/ameedanxari/menumaker-backend/pkg/enums"
	pkgerrors "github.com/ameedanxari/menumaker-backend/pkg/errors"
	"github.com/ameedanxari/menumaker-backend/pkg/pagination"
)

// Repository defines persistence operations for orders.
type Repository interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	GetOrdersByBusiness(ctx context.Context, businessID uuid.UUID, params pagination.Params) (*OrderList, error)
	GetCustomerOrders(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*OrderList, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

// OrderList wraps one page of orders plus the next cursor.
type OrderList struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

type repository struct {
	repo.Base
}

// NewRepository builds an orders repository on the provided connection.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.DB(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) GetOrdersByBusiness(ctx context.Context, businessID uuid.UUID, params pagination.Params) (*OrderList, error) {
	return r.list(ctx, "business_id = ?", businessID, params)
}

func (r *repository) GetCustomerOrders(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*OrderList, error) {
	return r.list(ctx, "customer_id = ?", customerID, params)
}

func (r *repository) list(ctx context.Context, where string, id uuid.UUID, params pagination.Params) (*OrderList, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	query := r.DB(ctx).
		Preload("Items").
		Where(where, id).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	if cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)",
			cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Order
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &OrderList{Orders: rows}
	if len(rows) > limit {
		list.Orders = rows[:limit]
		last := list.Orders[limit-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return list, nil
}

func (r *repository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.DB(ctx).Preload("Items").Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus applies a status-only change transactionally and returns
// the reloaded row. Every other column is untouched; callers replace their
// snapshot with the returned order wholesale.
func (r *repository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid order status %q", status)
	}

	var updated *models.Order
	err := r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Order
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}
		if !current.Status.CanTransitionTo(status) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("order %s cannot move from %s to %s", id, current.Status, status))
		}
		if err := tx.Model(&models.Order{}).
			Where("id = ?", id).
			Update("status", status).Error; err != nil {
			return err
		}
		var reloaded models.Order
		if err := tx.Preload("Items").Where("id = ?", id).First(&reloaded).Error; err != nil {
			return err
		}
		updated = &reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.New("order reload missing after status update")
	}
	return updated, nil
}

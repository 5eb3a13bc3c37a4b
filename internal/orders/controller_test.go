package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
	"github.com/ameedanxari/menumaker-backend/pkg/enums"
	pkgerrors "github.com/ameedanxari/menumaker-backend/pkg/errors"
	"github.com/ameedanxari/menumaker-backend/pkg/pagination"
	"github.com/ameedanxari/menumaker-backend/pkg/resource"
)

type stubOrderRepo struct {
	byID        map[uuid.UUID]*models.Order
	updateCalls int
	updateErr   error
}

func (s *stubOrderRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	return order, nil
}

func (s *stubOrderRepo) GetOrdersByBusiness(ctx context.Context, businessID uuid.UUID, params pagination.Params) (*OrderList, error) {
	return &OrderList{}, nil
}

func (s *stubOrderRepo) GetCustomerOrders(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*OrderList, error) {
	return &OrderList{}, nil
}

func (s *stubOrderRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if order, ok := s.byID[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	s.updateCalls++
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	order, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "transition disallowed")
	}
	order.Status = status
	copied := *order
	return &copied, nil
}

func pendingOrder() *models.Order {
	return &models.Order{
		ID:            uuid.New(),
		BusinessID:    uuid.New(),
		CustomerID:    uuid.New(),
		CustomerName:  "Asha Verma",
		Status:        enums.OrderStatusPending,
		PaymentMethod: enums.PaymentMethodCash,
		SubtotalCents: 1200,
		TotalCents:    1200,
	}
}

func newTestController(t *testing.T, repo Repository) *Controller {
	t.Helper()
	ctrl, err := NewController(repo, nil)
	require.NoError(t, err)
	return ctrl
}

func TestLoadOrderInstallsSnapshot(t *testing.T) {
	order := pendingOrder()
	repo := &stubOrderRepo{byID: map[uuid.UUID]*models.Order{order.ID: order}}
	ctrl := newTestController(t, repo)

	_, ok := ctrl.Order()
	require.False(t, ok, "no snapshot before the first load")

	got := resource.Await(ctrl.LoadOrder(context.Background(), order.ID))
	require.True(t, got.IsSuccess())

	held, ok := ctrl.Order()
	require.True(t, ok)
	require.Equal(t, *order, held)
}

func TestUpdateStatusReplacesSnapshotWholesale(t *testing.T) {
	order := pendingOrder()
	repo := &stubOrderRepo{byID: map[uuid.UUID]*models.Order{order.ID: order}}
	ctrl := newTestController(t, repo)

	resource.Await(ctrl.LoadOrder(context.Background(), order.ID))
	before, _ := ctrl.Order()

	got := resource.Await(ctrl.UpdateStatus(context.Background(), order.ID, enums.OrderStatusConfirmed))
	require.True(t, got.IsSuccess())

	after, ok := ctrl.Order()
	require.True(t, ok)
	require.Equal(t, enums.OrderStatusConfirmed, after.Status)

	// A status-only change leaves every other field of the snapshot intact.
	require.Equal(t, before.ID, after.ID)
	require.Equal(t, before.BusinessID, after.BusinessID)
	require.Equal(t, before.CustomerName, after.CustomerName)
	require.Equal(t, before.TotalCents, after.TotalCents)
}

func TestUpdateStatusErrorLeavesSnapshotUntouched(t *testing.T) {
	order := pendingOrder()
	repo := &stubOrderRepo{byID: map[uuid.UUID]*models.Order{order.ID: order}}
	ctrl := newTestController(t, repo)

	resource.Await(ctrl.LoadOrder(context.Background(), order.ID))
	before, _ := ctrl.Order()

	repo.updateErr = errors.New("connection reset by peer")
	got := resource.Await(ctrl.UpdateStatus(context.Background(), order.ID, enums.OrderStatusConfirmed))
	require.True(t, got.IsError())
	require.Equal(t, "connection reset by peer", got.Message(), "the repository message surfaces verbatim")

	after, ok := ctrl.Order()
	require.True(t, ok)
	require.Equal(t, before, after, "a failed transition must not disturb the held snapshot")
	require.Equal(t, "connection reset by peer", ctrl.LastError())
}

func TestUpdateStatusIllegalTransitionRefusedLocally(t *testing.T) {
	order := pendingOrder()
	order.Status = enums.OrderStatusDelivered
	repo := &stubOrderRepo{byID: map[uuid.UUID]*models.Order{order.ID: order}}
	ctrl := newTestController(t, repo)

	resource.Await(ctrl.LoadOrder(context.Background(), order.ID))

	got := resource.Await(ctrl.UpdateStatus(context.Background(), order.ID, enums.OrderStatusConfirmed))
	require.True(t, got.IsError())
	require.Zero(t, repo.updateCalls, "a transition the snapshot rules out never reaches the repository")

	held, _ := ctrl.Order()
	require.Equal(t, enums.OrderStatusDelivered, held.Status)
}

func TestUpdateStatusSkippingAStepIsRefused(t *testing.T) {
	order := pendingOrder()
	repo := &stubOrderRepo{byID: map[uuid.UUID]*models.Order{order.ID: order}}
	ctrl := newTestController(t, repo)

	resource.Await(ctrl.LoadOrder(context.Background(), order.ID))

	got := resource.Await(ctrl.UpdateStatus(context.Background(), order.ID, enums.OrderStatusReady))
	require.True(t, got.IsError())
	require.Zero(t, repo.updateCalls)
}

func TestUpdateStatusCancelFromAnyNonTerminal(t *testing.T) {
	order := pendingOrder()
	order.Status = enums.OrderStatusPreparing
	repo := &stubOrderRepo{byID: map[uuid.UUID]*models.Order{order.ID: order}}
	ctrl := newTestController(t, repo)

	resource.Await(ctrl.LoadOrder(context.Background(), order.ID))

	got := resource.Await(ctrl.UpdateStatus(context.Background(), order.ID, enums.OrderStatusCancelled))
	require.True(t, got.IsSuccess())

	held, _ := ctrl.Order()
	require.Equal(t, enums.OrderStatusCancelled, held.Status)
}

func TestSuccessClearsLastError(t *testing.T) {
	order := pendingOrder()
	repo := &stubOrderRepo{byID: map[uuid.UUID]*models.Order{order.ID: order}}
	ctrl := newTestController(t, repo)

	resource.Await(ctrl.LoadOrder(context.Background(), order.ID))

	repo.updateErr = errors.New("timeout")
	resource.Await(ctrl.UpdateStatus(context.Background(), order.ID, enums.OrderStatusConfirmed))
	require.Equal(t, "timeout", ctrl.LastError())

	repo.updateErr = nil
	got := resource.Await(ctrl.UpdateStatus(context.Background(), order.ID, enums.OrderStatusConfirmed))
	require.True(t, got.IsSuccess())
	require.Empty(t, ctrl.LastError())
}

func TestLoadOrderEmitsLoadingFirst(t *testing.T) {
	order := pendingOrder()
	repo := &stubOrderRepo{byID: map[uuid.UUID]*models.Order{order.ID: order}}
	ctrl := newTestController(t, repo)

	ch := ctrl.LoadOrder(context.Background(), order.ID)
	first := <-ch
	require.True(t, first.IsLoading())
	last := resource.Await(ch)
	require.True(t, last.Terminal())
}

package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
	"github.com/ameedanxari/menumaker-backend/pkg/enums"
	pkgerrors "github.com/ameedanxari/menumaker-backend/pkg/errors"
)

func newTestOrderService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, nil)
	require.NoError(t, err)
	return svc
}

func TestAdvanceStatusValidatesInput(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := newTestOrderService(t, repo)

	_, err := svc.AdvanceStatus(context.Background(), uuid.Nil, enums.OrderStatusConfirmed)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = svc.AdvanceStatus(context.Background(), uuid.New(), "shipped")
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	require.Zero(t, repo.updateCalls)
}

func TestAdvanceStatusMapsNotFound(t *testing.T) {
	svc := newTestOrderService(t, &stubOrderRepo{})

	_, err := svc.AdvanceStatus(context.Background(), uuid.New(), enums.OrderStatusConfirmed)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestAdvanceStatusPreservesStateConflict(t *testing.T) {
	order := pendingOrder()
	order.Status = enums.OrderStatusDelivered
	repo := &stubOrderRepo{byID: map[uuid.UUID]*models.Order{order.ID: order}}
	svc := newTestOrderService(t, repo)

	_, err := svc.AdvanceStatus(context.Background(), order.ID, enums.OrderStatusConfirmed)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))
}

func TestGetMapsNotFound(t *testing.T) {
	svc := newTestOrderService(t, &stubOrderRepo{})

	_, err := svc.Get(context.Background(), uuid.New())
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

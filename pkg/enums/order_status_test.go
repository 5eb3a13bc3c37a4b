package enums

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatusLinearProgression(t *testing.T) {
	steps := []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusDelivered,
	}
	for i := 0; i < len(steps)-1; i++ {
		require.True(t, steps[i].CanTransitionTo(steps[i+1]), "%s -> %s", steps[i], steps[i+1])
	}
}

func TestOrderStatusNoSkipping(t *testing.T) {
	require.False(t, OrderStatusPending.CanTransitionTo(OrderStatusPreparing))
	require.False(t, OrderStatusConfirmed.CanTransitionTo(OrderStatusDelivered))
	require.False(t, OrderStatusReady.CanTransitionTo(OrderStatusConfirmed))
}

func TestCancelReachableFromAnyNonTerminal(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady} {
		require.True(t, s.CanTransitionTo(OrderStatusCancelled), "%s should allow cancel", s)
	}
}

func TestTerminalStatesAllowNothing(t *testing.T) {
	for _, terminal := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled} {
		require.True(t, terminal.IsTerminal())
		for _, target := range validOrderStatuses {
			require.False(t, terminal.CanTransitionTo(target), "%s -> %s", terminal, target)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("preparing")
	require.NoError(t, err)
	require.Equal(t, OrderStatusPreparing, status)

	_, err = ParseOrderStatus("shipped")
	require.Error(t, err)
}

package resource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvelopeStates(t *testing.T) {
	loading := Loading[int]()
	require.True(t, loading.IsLoading())
	require.False(t, loading.Terminal())

	success := Success(42)
	require.True(t, success.IsSuccess())
	v, ok := success.Value()
	require.True(t, ok)
	require.Equal(t, 42, v)

	failed := Fail[int]("boom")
	require.True(t, failed.IsError())
	require.Equal(t, "boom", failed.Message())
	_, ok = failed.Value()
	require.False(t, ok)
}

func TestHolderUnstartedIsNotLoading(t *testing.T) {
	var h Holder[string]
	_, started := h.Get()
	require.False(t, started, "an unstarted holder must be distinguishable from a loading one")
}

func TestHolderResolvesLatestToken(t *testing.T) {
	var h Holder[string]
	token := h.Begin()

	cur, started := h.Get()
	require.True(t, started)
	require.True(t, cur.IsLoading())

	require.True(t, h.Resolve(token, Success("a")))
	cur, _ = h.Get()
	require.Equal(t, "a", cur.MustValue())
}

func TestHolderDiscardsStaleResolution(t *testing.T) {
	var h Holder[string]
	first := h.Begin()
	second := h.Begin()

	require.True(t, h.Resolve(second, Success("new")))
	require.False(t, h.Resolve(first, Success("old")), "the earlier call resolving late must be dropped")

	cur, _ := h.Get()
	require.Equal(t, "new", cur.MustValue())
}

func TestGoEmitsLoadingThenOneTerminal(t *testing.T) {
	ch := Go(context.Background(), func(ctx context.Context) (int, error) {
		return 7, nil
	})

	first := <-ch
	require.True(t, first.IsLoading())

	second := <-ch
	require.True(t, second.IsSuccess())
	require.Equal(t, 7, second.MustValue())

	_, open := <-ch
	require.False(t, open, "channel must close after the terminal value")
}

func TestGoCarriesErrorMessageVerbatim(t *testing.T) {
	ch := Go(context.Background(), func(ctx context.Context) (int, error) {
		return 0, errors.New("network unreachable")
	})
	terminal := Await(ch)
	require.True(t, terminal.IsError())
	require.Equal(t, "network unreachable", terminal.Message())
}

package orders

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
	"github.com/ameedanxari/menumaker-backend/pkg/enums"
	"github.com/ameedanxari/menumaker-backend/pkg/metrics"
	"github.com/ameedanxari/menumaker-backend/pkg/resource"
)

// Controller tracks one order through its lifecycle for a single session. The
// held snapshot only ever changes on a successful load or transition, and is
// always replaced wholesale with the row the repository returned. A failed
// call records its message and leaves the snapshot exactly as it was, so the
// caller keeps rendering known-good data next to the error. Stale resolutions
// from superseded calls are discarded.
type Controller struct {
	repo    Repository
	metrics *metrics.DomainMetrics

	mu       sync.Mutex
	seq      uint64
	started  bool
	loading  bool
	snapshot *models.Order
	lastErr  string
}

// NewController builds a lifecycle controller. Metrics are optional.
func NewController(repo Repository, m *metrics.DomainMetrics) (*Controller, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &Controller{repo: repo, metrics: m}, nil
}

// LoadOrder fetches the order and, on success, replaces the held snapshot.
func (c *Controller) LoadOrder(ctx context.Context, id uuid.UUID) <-chan resource.Resource[models.Order] {
	token := c.begin()
	ch := resource.Go(ctx, func(ctx context.Context) (models.Order, error) {
		order, err := c.repo.GetOrderByID(ctx, id)
		if err != nil {
			return models.Order{}, err
		}
		return *order, nil
	})
	return c.mirror(ch, token, "")
}

// UpdateStatus requests a transition to target. When the held snapshot
// already rules the transition out, the call fails locally without reaching
// the repository. Otherwise the repository decides against the current row
// and its error message surfaces verbatim.
func (c *Controller) UpdateStatus(ctx context.Context, id uuid.UUID, target enums.OrderStatus) <-chan resource.Resource[models.Order] {
	if msg, ok := c.refuseLocally(id, target); ok {
		token := c.begin()
		out := make(chan resource.Resource[models.Order], 2)
		out <- resource.Loading[models.Order]()
		fail := resource.Fail[models.Order](msg)
		c.resolve(token, fail)
		out <- fail
		close(out)
		return out
	}

	token := c.begin()
	ch := resource.Go(ctx, func(ctx context.Context) (models.Order, error) {
		order, err := c.repo.UpdateOrderStatus(ctx, id, target)
		if err != nil {
			return models.Order{}, err
		}
		return *order, nil
	})
	return c.mirror(ch, token, string(target))
}

// Order returns a copy of the held snapshot; ok is false when no load or
// transition has succeeded yet.
func (c *Controller) Order() (models.Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return models.Order{}, false
	}
	return *c.snapshot, true
}

// Loading reports whether the most recently issued call is still in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LastError returns the message of the most recent failed call, cleared by
// the next success.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Started reports whether any call was ever issued.
func (c *Controller) Started() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

func (c *Controller) refuseLocally(id uuid.UUID, target enums.OrderStatus) (string, bool) {
	if !target.IsValid() {
		return fmt.Sprintf("invalid order status %q", target), true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil || c.snapshot.ID != id {
		return "", false
	}
	if !c.snapshot.Status.CanTransitionTo(target) {
		return fmt.Sprintf("order %s cannot move from %s to %s", id, c.snapshot.Status, target), true
	}
	return "", false
}

func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.started = true
	c.loading = true
	return c.seq
}

func (c *Controller) resolve(token uint64, r resource.Resource[models.Order]) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.seq {
		return false
	}
	c.loading = false
	if order, ok := r.Value(); ok {
		c.snapshot = &order
		c.lastErr = ""
	} else {
		c.lastErr = r.Message()
	}
	return true
}

// mirror forwards the envelope stream to the caller while installing terminal
// values under the issued token. transition is the target status for metric
// counting, empty for plain loads.
func (c *Controller) mirror(ch <-chan resource.Resource[models.Order], token uint64, transition string) <-chan resource.Resource[models.Order] {
	out := make(chan resource.Resource[models.Order], 2)
	go func() {
		defer close(out)
		for r := range ch {
			if r.Terminal() {
				if c.resolve(token, r) && r.IsSuccess() && transition != "" {
					c.metrics.IncStatusTransition(transition)
				}
			}
			out <- r
		}
	}()
	return out
}

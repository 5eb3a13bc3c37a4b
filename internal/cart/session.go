package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
	"github.com/ameedanxari/menumaker-backend/pkg/resource"
)

// Session is the cart aggregator for one active checkout session. It is
// owned by a single logical caller; the internal holders make concurrent
// reads safe but no cross-caller coordination is promised. Repository calls
// resolve asynchronously and the held state follows the most recently issued
// load, stale resolutions are discarded.
type Session struct {
	businessID uuid.UUID
	repo       Repository

	items resource.Holder[[]models.CartItem]
	total resource.Holder[int]
}

// NewSession scopes a cart session to one business.
func NewSession(businessID uuid.UUID, repo Repository) (*Session, error) {
	if businessID == uuid.Nil {
		return nil, fmt.Errorf("business id required")
	}
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	return &Session{businessID: businessID, repo: repo}, nil
}

// BusinessID returns the business this session's cart belongs to.
func (s *Session) BusinessID() uuid.UUID {
	return s.businessID
}

// AddItem forwards the line to the repository, which inserts it or replaces
// an existing line with the same dish id. Errors surface through the returned
// envelope; the session does not re-validate.
func (s *Session) AddItem(ctx context.Context, line models.CartItem) <-chan resource.Resource[models.CartItem] {
	line.BusinessID = s.businessID
	return resource.Go(ctx, func(ctx context.Context) (models.CartItem, error) {
		saved, err := s.repo.AddToCart(ctx, line)
		if err != nil {
			return models.CartItem{}, err
		}
		return *saved, nil
	})
}

// UpdateQuantity produces a copy of line with only the quantity changed and
// forwards it unconditionally. Quantity zero is forwarded as-is: whether zero
// means deletion is the repository layer's decision, not the session's.
func (s *Session) UpdateQuantity(ctx context.Context, line models.CartItem, quantity int) <-chan resource.Resource[models.CartItem] {
	updated := line
	updated.Quantity = quantity
	return resource.Go(ctx, func(ctx context.Context) (models.CartItem, error) {
		saved, err := s.repo.UpdateCartItem(ctx, updated)
		if err != nil {
			return models.CartItem{}, err
		}
		return *saved, nil
	})
}

// RemoveItem forwards the dish id to the repository's removal call.
func (s *Session) RemoveItem(ctx context.Context, dishID string) <-chan resource.Resource[struct{}] {
	return resource.Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.RemoveFromCart(ctx, s.businessID, dishID)
	})
}

// Clear forwards the business id to the repository's clear call; only this
// business's lines are affected.
func (s *Session) Clear(ctx context.Context) <-chan resource.Resource[struct{}] {
	return resource.Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.ClearCart(ctx, s.businessID)
	})
}

// LoadItems refreshes the held item list.
func (s *Session) LoadItems(ctx context.Context) <-chan resource.Resource[[]models.CartItem] {
	token := s.items.Begin()
	ch := resource.Go(ctx, func(ctx context.Context) ([]models.CartItem, error) {
		return s.repo.GetCartItems(ctx, s.businessID)
	})
	return tee(ch, token, &s.items)
}

// LoadTotal refreshes the held cart total.
func (s *Session) LoadTotal(ctx context.Context) <-chan resource.Resource[int] {
	token := s.total.Begin()
	ch := resource.Go(ctx, func(ctx context.Context) (int, error) {
		return s.repo.GetCartTotal(ctx, s.businessID)
	})
	return tee(ch, token, &s.total)
}

// Items returns the held item list envelope; the boolean is false when no
// load was ever issued.
func (s *Session) Items() (resource.Resource[[]models.CartItem], bool) {
	return s.items.Get()
}

// Total returns the held total envelope; the boolean is false when no load
// was ever issued.
func (s *Session) Total() (resource.Resource[int], bool) {
	return s.total.Get()
}

// tee mirrors the envelope stream to the caller while installing terminal
// values into the session holder under the issued token.
func tee[T any](ch <-chan resource.Resource[T], token uint64, holder *resource.Holder[T]) <-chan resource.Resource[T] {
	out := make(chan resource.Resource[T], 2)
	go func() {
		defer close(out)
		for r := range ch {
			if r.Terminal() {
				holder.Resolve(token, r)
			}
			out <- r
		}
	}()
	return out
}

// SubtotalCents sums quantity times unit price across the given lines. The
// result is non-negative minor currency units.
func SubtotalCents(items []models.CartItem) int {
	var sum int
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		sum += item.LineTotalCents()
	}
	return sum
}

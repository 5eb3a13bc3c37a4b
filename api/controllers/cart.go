package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ameedanxari/menumaker-backend/api/responses"
	"github.com/ameedanxari/menumaker-backend/api/validators"
	"github.com/ameedanxari/menumaker-backend/internal/cart"
	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
	pkgerrors "github.com/ameedanxari/menumaker-backend/pkg/errors"
	"github.com/ameedanxari/menumaker-backend/pkg/logger"
	"github.com/ameedanxari/menumaker-backend/pkg/resource"
)

type cartAddRequest struct {
	BusinessID     uuid.UUID `json:"business_id" validate:"required"`
	DishID         string    `json:"dish_id" validate:"required"`
	Name           string    `json:"name" validate:"required"`
	Quantity       int       `json:"quantity" validate:"required,min=1"`
	UnitPriceCents int       `json:"unit_price_cents" validate:"required,min=1"`
}

type cartQuantityRequest struct {
	BusinessID uuid.UUID `json:"business_id" validate:"required"`
	DishID     string    `json:"dish_id" validate:"required"`
	// Quantity zero removes the line.
	Quantity int `json:"quantity" validate:"min=0"`
}

type cartView struct {
	Items         []models.CartItem `json:"items"`
	SubtotalCents int               `json:"subtotal_cents"`
}

// CartFetch returns the business's cart lines and subtotal.
func CartFetch(repo cart.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromQuery(r, repo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		got := resource.Await(session.LoadItems(r.Context()))
		items, ok := got.Value()
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, got.Message()))
			return
		}

		responses.WriteSuccess(w, cartView{Items: items, SubtotalCents: cart.SubtotalCents(items)})
	}
}

// CartTotal returns the running total in cents.
func CartTotal(repo cart.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromQuery(r, repo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		got := resource.Await(session.LoadTotal(r.Context()))
		total, ok := got.Value()
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, got.Message()))
			return
		}

		responses.WriteSuccess(w, map[string]int{"total_cents": total})
	}
}

// CartAdd inserts or replaces one dish line.
func CartAdd(repo cart.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cartAddRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := cart.NewSession(req.BusinessID, repo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cart session"))
			return
		}

		got := resource.Await(session.AddItem(r.Context(), models.CartItem{
			DishID:         req.DishID,
			Name:           req.Name,
			Quantity:       req.Quantity,
			UnitPriceCents: req.UnitPriceCents,
		}))
		saved, ok := got.Value()
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, got.Message()))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, saved)
	}
}

// CartUpdateQuantity changes one line's quantity; zero removes the line.
func CartUpdateQuantity(repo cart.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := cart.NewSession(req.BusinessID, repo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cart session"))
			return
		}

		loaded := resource.Await(session.LoadItems(r.Context()))
		items, ok := loaded.Value()
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, loaded.Message()))
			return
		}

		var line *models.CartItem
		for i := range items {
			if items[i].DishID == req.DishID {
				line = &items[i]
				break
			}
		}
		if line == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "dish not in cart"))
			return
		}

		got := resource.Await(session.UpdateQuantity(r.Context(), *line, req.Quantity))
		updated, ok := got.Value()
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, got.Message()))
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// CartRemove deletes one dish line.
func CartRemove(repo cart.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromQuery(r, repo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dishID := strings.TrimSpace(chi.URLParam(r, "dishId"))
		if dishID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "dish id is required"))
			return
		}

		got := resource.Await(session.RemoveItem(r.Context(), dishID))
		if got.IsError() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, got.Message()))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// CartClear empties the business's cart.
func CartClear(repo cart.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromQuery(r, repo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		got := resource.Await(session.Clear(r.Context()))
		if got.IsError() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, got.Message()))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

func sessionFromQuery(r *http.Request, repo cart.Repository) (*cart.Session, error) {
	businessID, err := validators.ParseQueryUUID(r, "business_id")
	if err != nil {
		return nil, err
	}
	session, err := cart.NewSession(businessID, repo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cart session")
	}
	return session, nil
}

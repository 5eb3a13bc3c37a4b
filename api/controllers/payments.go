package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ameedanxari/menumaker-backend/api/responses"
	"github.com/ameedanxari/menumaker-backend/api/validators"
	"github.com/ameedanxari/menumaker-backend/internal/payments"
	"github.com/ameedanxari/menumaker-backend/pkg/logger"
)

type processorConnectRequest struct {
	BusinessID uuid.UUID `json:"business_id" validate:"required"`
	Name       string    `json:"name" validate:"required"`
}

// ProcessorList returns the business's payment processors.
func ProcessorList(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := validators.ParseQueryUUID(r, "business_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		processors, err := svc.ListProcessors(r.Context(), businessID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, processors)
	}
}

// ProcessorConnect marks a processor connected for the business.
func ProcessorConnect(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req processorConnectRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		processor, err := svc.ConnectProcessor(r.Context(), req.BusinessID, req.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, processor)
	}
}

// PayoutList returns the business's payouts, newest period first.
func PayoutList(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, err := validators.ParseQueryUUID(r, "business_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payouts, err := svc.ListPayouts(r.Context(), businessID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payouts)
	}
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ameedanxari/menumaker-backend/api/responses"
	"github.com/ameedanxari/menumaker-backend/api/validators"
	"github.com/ameedanxari/menumaker-backend/internal/referrals"
	pkgerrors "github.com/ameedanxari/menumaker-backend/pkg/errors"
	"github.com/ameedanxari/menumaker-backend/pkg/logger"
	"github.com/ameedanxari/menumaker-backend/pkg/pagination"
	"github.com/ameedanxari/menumaker-backend/pkg/resource"
)

type referralApplyRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Code   string    `json:"code"`
}

// ReferralAccount returns the user's referral code and counters.
func ReferralAccount(repo referrals.Repository, rewardCents int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := referralSessionFromQuery(r, repo, rewardCents)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		got := resource.Await(session.LoadAccount(r.Context()))
		account, ok := got.Value()
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, got.Message()))
			return
		}
		responses.WriteSuccess(w, account)
	}
}

// ReferralApply applies someone else's code on behalf of the user. The user's
// own account is loaded first so the self-use guard has a code to compare
// against.
func ReferralApply(repo referrals.Repository, rewardCents int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req referralApplyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := referrals.NewSession(req.UserID, rewardCents, repo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid referral session"))
			return
		}

		// A user without an account yet can still apply a code; only a
		// successful load primes the local self-use guard.
		resource.Await(session.LoadAccount(r.Context()))

		got := resource.Await(session.ApplyCode(r.Context(), req.Code))
		event, ok := got.Value()
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, got.Message()))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, event)
	}
}

// ReferralHistory pages the user's referral events.
func ReferralHistory(repo referrals.Repository, rewardCents int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := referralSessionFromQuery(r, repo, rewardCents)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		got := resource.Await(session.History(r.Context(), params))
		list, ok := got.Value()
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, got.Message()))
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func referralSessionFromQuery(r *http.Request, repo referrals.Repository, rewardCents int) (*referrals.Session, error) {
	userID, err := validators.ParseQueryUUID(r, "user_id")
	if err != nil {
		return nil, err
	}
	session, err := referrals.NewSession(userID, rewardCents, repo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid referral session")
	}
	return session, nil
}

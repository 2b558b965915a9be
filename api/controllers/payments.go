package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ms-You/emmerce-api-sub000/api/middleware"
	"github.com/Ms-You/emmerce-api-sub000/api/responses"
	"github.com/Ms-You/emmerce-api-sub000/api/validators"
	paymentsvc "github.com/Ms-You/emmerce-api-sub000/internal/payments"
	pkgerrors "github.com/Ms-You/emmerce-api-sub000/pkg/errors"
	"github.com/Ms-You/emmerce-api-sub000/pkg/logger"
)

// PaymentReady handles POST /api/v1/payments/{orderId}/ready.
func PaymentReady(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := middleware.MemberID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Ready(r.Context(), orderID, memberID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// PaymentApprove handles GET /api/v1/payments/approve, the provider's
// redirect callback. The member identity rides on order_id + the
// original partner_user_id stored at ready time; the buyer's browser
// carries no bearer token here.
func PaymentApprove(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseQueryUUID(r, "order_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		memberID, err := validators.ParseQueryUUID(r, "member_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pgToken := r.URL.Query().Get("pg_token")
		if pgToken == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "pg_token is required"))
			return
		}

		result, err := svc.Approve(r.Context(), orderID, memberID, pgToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// PaymentCancel handles POST /api/v1/payments/{orderId}/cancel.
func PaymentCancel(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := middleware.MemberID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Cancel(r.Context(), orderID, memberID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "canceled"})
	}
}

// PaymentInfo handles GET /api/v1/payments/{orderId}.
func PaymentInfo(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := middleware.MemberID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		info, err := svc.Info(r.Context(), orderID, memberID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, info)
	}
}

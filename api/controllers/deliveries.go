package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ms-You/emmerce-api-sub000/api/responses"
	"github.com/Ms-You/emmerce-api-sub000/api/validators"
	deliverysvc "github.com/Ms-You/emmerce-api-sub000/internal/deliveries"
	"github.com/Ms-You/emmerce-api-sub000/pkg/enums"
	pkgerrors "github.com/Ms-You/emmerce-api-sub000/pkg/errors"
	"github.com/Ms-You/emmerce-api-sub000/pkg/logger"
)

type changeDeliveryStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// GetDelivery handles GET /api/v1/deliveries/{orderLineId}.
func GetDelivery(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderLineID, err := validators.ParsePathUUID(chi.URLParam(r, "orderLineId"), "orderLineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		info, err := svc.GetByOrderLine(r.Context(), orderLineID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, info)
	}
}

// ChangeDeliveryStatus handles PATCH /api/v1/deliveries/{orderLineId}.
func ChangeDeliveryStatus(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderLineID, err := validators.ParsePathUUID(chi.URLParam(r, "orderLineId"), "orderLineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload changeDeliveryStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseDeliveryStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		if err := svc.ChangeStatus(r.Context(), orderLineID, status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"orderLineId": orderLineID,
			"status":      status,
		})
	}
}

package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Ms-You/emmerce-api-sub000/api/middleware"
	"github.com/Ms-You/emmerce-api-sub000/api/responses"
	"github.com/Ms-You/emmerce-api-sub000/api/validators"
	ordersvc "github.com/Ms-You/emmerce-api-sub000/internal/orders"
	"github.com/Ms-You/emmerce-api-sub000/pkg/logger"
	"github.com/Ms-You/emmerce-api-sub000/pkg/pagination"
)

type startOrderRequest struct {
	Lines            []orderLinePayload `json:"lines" validate:"required,min=1,dive"`
	RecipientName    string             `json:"recipientName" validate:"required"`
	RecipientContact string             `json:"recipientContact" validate:"required"`
	Address          string             `json:"address" validate:"required"`
}

type orderLinePayload struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

func (r startOrderRequest) toInput(memberID uuid.UUID) ordersvc.StartOrderInput {
	lines := make([]ordersvc.StartOrderLine, len(r.Lines))
	for i, payload := range r.Lines {
		lines[i] = ordersvc.StartOrderLine{
			ProductID: payload.ProductID,
			Quantity:  payload.Quantity,
		}
	}
	return ordersvc.StartOrderInput{
		MemberID: memberID,
		Lines:    lines,
		DeliveryInfo: ordersvc.DeliveryInfo{
			RecipientName:    r.RecipientName,
			RecipientContact: r.RecipientContact,
			Address:          r.Address,
		},
	}
}

// StartOrder handles POST /api/v1/orders.
func StartOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := middleware.MemberID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload startOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := svc.Start(r.Context(), payload.toInput(memberID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"orderId": orderID})
	}
}

// ListOrders handles GET /api/v1/orders.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := middleware.MemberID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListOrders(r.Context(), memberID, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// GetOrderInfo handles GET /api/v1/orders/{orderId}.
func GetOrderInfo(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		info, err := svc.GetOrderInfo(r.Context(), orderID, memberID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, info)
	}
}

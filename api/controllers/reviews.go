package controllers

import (
	"net/http"

	"github.com/Ms-You/emmerce-api-sub000/api/middleware"
	"github.com/Ms-You/emmerce-api-sub000/api/responses"
	"github.com/Ms-You/emmerce-api-sub000/api/validators"
	reviewsvc "github.com/Ms-You/emmerce-api-sub000/internal/reviews"
	"github.com/Ms-You/emmerce-api-sub000/pkg/logger"
)

// ReviewEligibility handles GET /api/v1/reviews/eligibility.
func ReviewEligibility(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := middleware.MemberID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderLineID, err := validators.ParseQueryUUID(r, "order_line_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.CheckWritable(r.Context(), memberID, orderLineID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"orderLineId": orderLineID,
			"writable":    true,
		})
	}
}

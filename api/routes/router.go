package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ms-You/emmerce-api-sub000/api/controllers"
	"github.com/Ms-You/emmerce-api-sub000/api/middleware"
	deliverysvc "github.com/Ms-You/emmerce-api-sub000/internal/deliveries"
	ordersvc "github.com/Ms-You/emmerce-api-sub000/internal/orders"
	paymentsvc "github.com/Ms-You/emmerce-api-sub000/internal/payments"
	reviewsvc "github.com/Ms-You/emmerce-api-sub000/internal/reviews"
	"github.com/Ms-You/emmerce-api-sub000/pkg/config"
	"github.com/Ms-You/emmerce-api-sub000/pkg/logger"
	"github.com/Ms-You/emmerce-api-sub000/pkg/metrics"
	pkgredis "github.com/Ms-You/emmerce-api-sub000/pkg/redis"
)

// Deps bundles everything the router wires together.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DBPinger    pkgredis.Pinger
	RedisPinger pkgredis.Pinger
	IdemStore   pkgredis.IdempotencyStore
	Registry    *prometheus.Registry

	Orders     ordersvc.Service
	Payments   paymentsvc.Service
	Deliveries deliverysvc.Service
	Reviews    reviewsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	if deps.Registry != nil {
		httpMetrics := metrics.NewHTTPMetrics(deps.Registry)
		r.Use(middleware.Metrics(httpMetrics))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	// Provider redirect callback carries no bearer token.
	r.Get("/api/v1/payments/approve", controllers.PaymentApprove(deps.Payments, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(deps.IdemStore, logg))

		r.Route("/api/v1/orders", func(r chi.Router) {
			r.Post("/", controllers.StartOrder(deps.Orders, logg))
			r.Get("/", controllers.ListOrders(deps.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrderInfo(deps.Orders, logg))
		})

		r.Route("/api/v1/payments", func(r chi.Router) {
			r.Post("/{orderId}/ready", controllers.PaymentReady(deps.Payments, logg))
			r.Post("/{orderId}/cancel", controllers.PaymentCancel(deps.Payments, logg))
			r.Get("/{orderId}", controllers.PaymentInfo(deps.Payments, logg))
		})

		r.Get("/api/v1/deliveries/{orderLineId}", controllers.GetDelivery(deps.Deliveries, logg))
		r.Patch("/api/v1/deliveries/{orderLineId}", controllers.ChangeDeliveryStatus(deps.Deliveries, logg))

		r.Get("/api/v1/reviews/eligibility", controllers.ReviewEligibility(deps.Reviews, logg))
	})

	return r
}

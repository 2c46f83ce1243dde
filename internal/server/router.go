package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/josh-kwaku/razorpay-kafka-relay/api"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/handler"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/middleware"
)

type Handlers struct {
	Webhooks *handler.WebhookHandler
	Payments *handler.PaymentHandler
	Health   *handler.HealthHandler
}

// NewRouter serves the payment routes both at the root and under the
// /webhook mount prefix.
func NewRouter(log *slog.Logger, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(middleware.Recovery)

	r.Get("/health", h.Health.Liveness)
	r.Get("/health/ready", h.Health.Readiness)
	r.Get("/docs", handler.ServeDocsUI())
	r.Get("/docs/openapi.yaml", handler.ServeOpenAPI(api.OpenAPIDocument))

	payments := func(r chi.Router) {
		r.Post("/razorpay", h.Webhooks.ReceiveRazorpayWebhook)
		r.Post("/payment/initiate", h.Payments.InitiatePayment)
	}
	payments(r)
	r.Route("/webhook", payments)

	return r
}

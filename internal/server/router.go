package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orbitlabs/formgate/internal/handlers"
	"github.com/orbitlabs/formgate/internal/middleware"
)

// NewRouter constructs a ServeMux with the webhook intake routes registered.
func NewRouter(h *handlers.WebhookHandler) http.Handler {
	mux := http.NewServeMux()

	// Webhook intake endpoint
	mux.HandleFunc("/hooks/webflow-form", h.HandleFormWebhook)

	// Health endpoints
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/readyz", h.Ready)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestID(mux)
}

package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/orbitlabs/formgate/internal/httputil"
	"github.com/orbitlabs/formgate/internal/logging"
	"github.com/orbitlabs/formgate/internal/metrics"
	"github.com/orbitlabs/formgate/internal/ratelimit"
	"github.com/orbitlabs/formgate/internal/service"
)

// IntakeService runs one raw webhook body through the submission pipeline.
type IntakeService interface {
	Process(ctx context.Context, rawBody []byte, signatureHeader string) service.Outcome
}

// WebhookHandler receives form-sender webhook deliveries and maps pipeline
// outcomes to HTTP responses.
type WebhookHandler struct {
	intake      IntakeService
	rateLimiter ratelimit.RateLimiter
	logger      *logging.Logger
}

func NewWebhookHandler(intake IntakeService, rateLimiter ratelimit.RateLimiter, logger *logging.Logger) *WebhookHandler {
	if rateLimiter == nil {
		rateLimiter = &ratelimit.NoOpRateLimiter{}
	}
	return &WebhookHandler{
		intake:      intake,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// HandleFormWebhook processes a POSTed form submission.
func (h *WebhookHandler) HandleFormWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	start := time.Now()
	sourceIP := clientIP(r)

	allowed, err := h.rateLimiter.Allow(r.Context(), sourceIP)
	if err != nil {
		// A broken limiter backend must not take the intake path down.
		h.logger.WarnContext(r.Context(), "rate limiter unavailable, allowing request", logging.Error(err))
		allowed = true
	}
	if !allowed {
		httputil.WriteError(w, http.StatusTooManyRequests, "Rate limit exceeded")
		return
	}

	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	defer r.Body.Close()

	outcome := h.intake.Process(r.Context(), rawBody, signatureHeader(r))

	metrics.ProcessingDuration.Observe(time.Since(start).Seconds())
	httputil.WriteJSON(w, outcome.Status, outcome.Body)
}

// Health reports process liveness.
func (h *WebhookHandler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready reports readiness to take webhook traffic.
func (h *WebhookHandler) Ready(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// signatureHeader reads the submission signature. Two header names are
// checked because the upstream sender changed its spelling between API
// versions.
func signatureHeader(r *http.Request) string {
	if sig := r.Header.Get("Webflow-Signature"); sig != "" {
		return sig
	}
	return r.Header.Get("X-Webflow-Signature")
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/mvarma/portfolio-api/internal/models"
	"github.com/mvarma/portfolio-api/internal/ratelimit"
	"github.com/mvarma/portfolio-api/internal/request"
	"github.com/mvarma/portfolio-api/internal/services/relay"
	"github.com/mvarma/portfolio-api/internal/validation"
	"go.uber.org/zap"
)

// ContactHandler handles contact form submissions: rate limit, validate,
// forward to the email relay. Nothing is persisted.
type ContactHandler struct {
	relay   *relay.Client
	limiter *ratelimit.SlidingWindow
	logger  *zap.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(relayClient *relay.Client, limiter *ratelimit.SlidingWindow, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{relay: relayClient, limiter: limiter, logger: logger}
}

// RegisterRoutes registers contact routes on the given router
func (h *ContactHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.Submit).Methods("POST")
}

// Submit handles POST /api/v1/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	clientID := request.ClientIP(r)
	if !h.limiter.Allow(clientID) {
		respondError(w, http.StatusTooManyRequests, "Too many requests. Please try again in 15 minutes.", nil)
		return
	}

	var form validation.ContactForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := validation.Validate.Struct(form); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed", validation.FieldErrors(err))
		return
	}

	submission := &models.ContactSubmission{
		Name:    validation.SanitizeText(form.Name),
		Email:   strings.ToLower(strings.TrimSpace(form.Email)),
		Query:   models.QueryType(form.Query),
		Message: validation.SanitizeText(form.Message),
	}

	if err := h.relay.Send(r.Context(), submission); err != nil {
		switch {
		case errors.Is(err, relay.ErrNotConfigured):
			h.logger.Error("relay_not_configured")
			respondError(w, http.StatusServiceUnavailable, "Contact service is not configured", nil)
		case errors.Is(err, relay.ErrUpstream):
			h.logger.Error("relay_send_failed", zap.Error(err))
			respondError(w, http.StatusBadGateway, "Failed to send message. Please try again later.", nil)
		default:
			h.logger.Error("relay_unreachable", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Failed to send message. Please try again later.", nil)
		}
		return
	}

	h.logger.Info("contact_submission_forwarded",
		zap.String("query", form.Query),
	)
	respondSuccess(w, http.StatusOK, "Message sent successfully. I'll get back to you soon.", nil)
}

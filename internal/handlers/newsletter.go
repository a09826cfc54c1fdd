package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mvarma/portfolio-api/internal/ratelimit"
	"github.com/mvarma/portfolio-api/internal/request"
	"github.com/mvarma/portfolio-api/internal/services/newsletter"
	"github.com/mvarma/portfolio-api/internal/validation"
	"go.uber.org/zap"
)

// NewsletterHandler handles newsletter subscription requests. The service may
// be nil when no subscriber store is configured; requests then degrade to a
// configuration error instead of a crash.
type NewsletterHandler struct {
	service *newsletter.Service
	limiter *ratelimit.SlidingWindow
	logger  *zap.Logger
}

// NewNewsletterHandler creates a new newsletter handler
func NewNewsletterHandler(service *newsletter.Service, limiter *ratelimit.SlidingWindow, logger *zap.Logger) *NewsletterHandler {
	return &NewsletterHandler{service: service, limiter: limiter, logger: logger}
}

// RegisterRoutes registers newsletter routes on the given router
func (h *NewsletterHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/subscribe", h.Subscribe).Methods("POST")
	r.HandleFunc("/unsubscribe", h.Unsubscribe).Methods("POST")
	r.HandleFunc("/count", h.Count).Methods("GET")
}

// subscriptionData is the payload returned on successful subscription
type subscriptionData struct {
	Email        string `json:"email"`
	SubscribedAt string `json:"subscribed_at"`
}

// Subscribe handles POST /api/v1/newsletter/subscribe
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	clientID := request.ClientIP(r)
	if !h.limiter.Allow(clientID) {
		respondError(w, http.StatusTooManyRequests, "Too many subscription attempts. Please try again later.", nil)
		return
	}

	var form validation.NewsletterForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := validation.Validate.Struct(form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid email format", validation.FieldErrors(err))
		return
	}

	if h.service == nil {
		respondError(w, http.StatusServiceUnavailable, "Newsletter service is not configured", nil)
		return
	}

	result, err := h.service.Subscribe(r.Context(), form.Email)
	if err != nil {
		if errors.Is(err, newsletter.ErrInvalidEmail) {
			respondError(w, http.StatusBadRequest, "Invalid email format", nil)
			return
		}
		h.logger.Error("subscription_failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to process newsletter subscription", nil)
		return
	}

	if result.AlreadySubscribed {
		respondOutcome(w, "ALREADY_SUBSCRIBED", "Email is already subscribed to our newsletter")
		return
	}

	h.logger.Info("newsletter_subscribed")
	respondSuccess(w, http.StatusOK, "Successfully subscribed to newsletter", subscriptionData{
		Email:        result.Subscriber.Email,
		SubscribedAt: result.Subscriber.SubscribedAt.UTC().Format(time.RFC3339),
	})
}

// Unsubscribe handles POST /api/v1/newsletter/unsubscribe. A missing
// subscription is a successful no-op.
func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	clientID := request.ClientIP(r)
	if !h.limiter.Allow(clientID) {
		respondError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.", nil)
		return
	}

	var form validation.NewsletterForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := validation.Validate.Struct(form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid email format", validation.FieldErrors(err))
		return
	}

	if h.service == nil {
		respondError(w, http.StatusServiceUnavailable, "Newsletter service is not configured", nil)
		return
	}

	if err := h.service.Unsubscribe(r.Context(), form.Email); err != nil {
		if errors.Is(err, newsletter.ErrInvalidEmail) {
			respondError(w, http.StatusBadRequest, "Invalid email format", nil)
			return
		}
		h.logger.Error("unsubscribe_failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to process unsubscribe request", nil)
		return
	}

	respondSuccess(w, http.StatusOK, "Successfully unsubscribed from newsletter", nil)
}

// Count handles GET /api/v1/newsletter/count
func (h *NewsletterHandler) Count(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		respondError(w, http.StatusServiceUnavailable, "Newsletter service is not configured", nil)
		return
	}

	count, err := h.service.ActiveCount(r.Context())
	if err != nil {
		h.logger.Error("subscriber_count_failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to retrieve subscriber count", nil)
		return
	}

	respondSuccess(w, http.StatusOK, "Subscriber count retrieved", map[string]int{"count": count})
}

package handler

import (
	"encoding/json"
	"net/http"

	"talktutor/internal/apierr"
	"talktutor/internal/api/v1/dto"
	"talktutor/internal/middleware"
	"talktutor/internal/model"
	"talktutor/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type SubscriptionHandler struct {
	planService service.PlanService
	validate    *validator.Validate
	logger      zerolog.Logger
	debug       bool
}

func NewSubscriptionHandler(planService service.PlanService, validate *validator.Validate, logger zerolog.Logger, debug bool) *SubscriptionHandler {
	return &SubscriptionHandler{planService: planService, validate: validate, logger: logger, debug: debug}
}

// RegisterRoutes mounts the subscription endpoints. The plan catalog is
// public; activation requires a bearer token.
func (h *SubscriptionHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/subscription/plans", http.HandlerFunc(h.plans))
	mux.Handle("/subscription/activate", authMw(http.HandlerFunc(h.activate)))
}

func (h *SubscriptionHandler) plans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, dto.NewPlansResponse(h.planService.Plans()))
}

func (h *SubscriptionHandler) activate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierr.Write(w, h.logger, h.debug, apierr.Unauthenticated("user not found in context"))
		return
	}

	var req dto.ActivateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, h.logger, h.debug, apierr.Validation("invalid JSON payload", err.Error()))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		apierr.Write(w, h.logger, h.debug, apierr.Validation("request validation failed", err.Error()))
		return
	}

	expiresAt, err := h.planService.Activate(r.Context(), user, model.PlanTier(req.Plan), req.BillingPeriod)
	if err != nil {
		apierr.Write(w, h.logger, h.debug, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, dto.ActivateResponseDTO{
		Success:   true,
		Plan:      req.Plan,
		ExpiresAt: expiresAt,
	})
}

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"talktutor/internal/apierr"
	"talktutor/internal/api/v1/dto"
	"talktutor/internal/middleware"
	"talktutor/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type AnalysisHandler struct {
	coachService service.CoachService
	validate     *validator.Validate
	logger       zerolog.Logger
	debug        bool
}

func NewAnalysisHandler(coachService service.CoachService, validate *validator.Validate, logger zerolog.Logger, debug bool) *AnalysisHandler {
	return &AnalysisHandler{coachService: coachService, validate: validate, logger: logger, debug: debug}
}

func (h *AnalysisHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/analyze-text", authMw(http.HandlerFunc(h.analyzeText)))
	mux.Handle("/analyze-image", authMw(http.HandlerFunc(h.analyzeImage)))
	mux.Handle("/history", authMw(http.HandlerFunc(h.history)))
	mux.Handle("/analysis/", authMw(http.HandlerFunc(h.getAnalysis)))
}

func (h *AnalysisHandler) analyzeText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierr.Write(w, h.logger, h.debug, apierr.Unauthenticated("user not found in context"))
		return
	}

	var req dto.AnalyzeTextRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, h.logger, h.debug, apierr.Validation("invalid JSON payload", err.Error()))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		apierr.Write(w, h.logger, h.debug, apierr.Validation("request validation failed", err.Error()))
		return
	}

	analysis, err := h.coachService.AnalyzeText(r.Context(), user, req.ConversationText, req.Tone, req.Goal)
	if err != nil {
		apierr.Write(w, h.logger, h.debug, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, dto.NewAnalysisResponse(analysis))
}

func (h *AnalysisHandler) analyzeImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierr.Write(w, h.logger, h.debug, apierr.Unauthenticated("user not found in context"))
		return
	}

	var req dto.AnalyzeImageRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, h.logger, h.debug, apierr.Validation("invalid JSON payload", err.Error()))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		apierr.Write(w, h.logger, h.debug, apierr.Validation("request validation failed", err.Error()))
		return
	}

	analysis, err := h.coachService.AnalyzeImage(r.Context(), user, req.ImageBase64, req.Tone, req.Goal, req.Context)
	if err != nil {
		apierr.Write(w, h.logger, h.debug, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, dto.NewAnalysisResponse(analysis))
}

func (h *AnalysisHandler) history(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierr.Write(w, h.logger, h.debug, apierr.Unauthenticated("user not found in context"))
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	analyses, err := h.coachService.History(r.Context(), user, limit)
	if err != nil {
		apierr.Write(w, h.logger, h.debug, err)
		return
	}

	resp := dto.HistoryResponseDTO{Analyses: make([]dto.HistoryItemDTO, 0, len(analyses))}
	for i := range analyses {
		resp.Analyses = append(resp.Analyses, dto.NewHistoryItem(&analyses[i]))
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

func (h *AnalysisHandler) getAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierr.Write(w, h.logger, h.debug, apierr.Unauthenticated("user not found in context"))
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/analysis/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	analysis, err := h.coachService.Get(r.Context(), user, id)
	if err != nil {
		apierr.Write(w, h.logger, h.debug, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, dto.NewAnalysisDetail(analysis))
}

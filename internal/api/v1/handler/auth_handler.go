package handler

import (
	"net/http"

	"talktutor/internal/apierr"
	"talktutor/internal/api/v1/dto"
	"talktutor/internal/middleware"
	"talktutor/internal/service"

	"github.com/rs/zerolog"
)

type AuthHandler struct {
	authService service.AuthService
	logger      zerolog.Logger
	debug       bool
}

func NewAuthHandler(authService service.AuthService, logger zerolog.Logger, debug bool) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger, debug: debug}
}

// RegisterRoutes mounts the auth endpoints. The session exchange is public;
// everything else requires a bearer token.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/auth/session", http.HandlerFunc(h.exchangeSession))
	mux.Handle("/auth/me", authMw(http.HandlerFunc(h.me)))
	mux.Handle("/auth/logout", authMw(http.HandlerFunc(h.logout)))
}

func (h *AuthHandler) exchangeSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		apierr.Write(w, h.logger, h.debug, apierr.Validation("missing X-Session-ID header", ""))
		return
	}

	user, token, err := h.authService.ExchangeSession(r.Context(), sessionID)
	if err != nil {
		apierr.Write(w, h.logger, h.debug, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, dto.SessionExchangeResponseDTO{
		User:         dto.NewUserResponse(user),
		SessionToken: token,
	})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierr.Write(w, h.logger, h.debug, apierr.Unauthenticated("user not found in context"))
		return
	}
	writeJSON(w, h.logger, http.StatusOK, dto.NewUserResponse(user))
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := h.authService.Logout(r.Context(), middleware.BearerToken(r)); err != nil {
		apierr.Write(w, h.logger, h.debug, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, dto.LogoutResponseDTO{Success: true})
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"talktutor/internal/apierr"
	"talktutor/internal/model"
	"talktutor/internal/service"

	"github.com/rs/zerolog"
)

// Typed key to avoid context collisions.
type contextKey string

const userContextKey = contextKey("user")

// UserFromContext returns the authenticated user stored by the auth middleware.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	return user, ok
}

// BearerToken extracts the token from an "Authorization: Bearer ..." header,
// or returns "" when the header is absent or malformed.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Auth resolves the bearer token to a user via the session store and embeds
// the user into the request context. A failed lookup ends the request.
func Auth(authSvc service.AuthService, logger zerolog.Logger, debug bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				apierr.Write(w, logger, debug, apierr.Unauthenticated("missing or malformed authorization header"))
				return
			}
			user, err := authSvc.Authenticate(r.Context(), token)
			if err != nil {
				apierr.Write(w, logger, debug, err)
				return
			}
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

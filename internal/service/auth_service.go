package service

import (
	"context"
	"time"

	"talktutor/internal/apierr"
	"talktutor/internal/model"
	"talktutor/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuthService owns the session lifecycle: provider exchange, bearer token
// validation, logout.
type AuthService interface {
	// ExchangeSession validates a provider-issued session id, upserts the user
	// and returns the user together with a freshly issued session token.
	ExchangeSession(ctx context.Context, sessionID string) (*model.User, string, error)
	// Authenticate resolves a bearer token to the current user. A missing
	// session, a lapsed expiry or a vanished user all fail the same way.
	Authenticate(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	provider SessionProvider
	ttl      time.Duration
	logger   zerolog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	provider SessionProvider,
	sessionTTL time.Duration,
	logger zerolog.Logger,
) AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &authService{
		users:    users,
		sessions: sessions,
		provider: provider,
		ttl:      sessionTTL,
		logger:   logger.With().Str("service", "AuthService").Logger(),
	}
}

func (s *authService) ExchangeSession(ctx context.Context, sessionID string) (*model.User, string, error) {
	identity, err := s.provider.Resolve(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.Upsert(ctx, &model.User{
		ID:      identity.ID,
		Email:   identity.Email,
		Name:    identity.Name,
		Picture: identity.Picture,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", identity.ID).Msg("Failed to upsert user on exchange")
		return nil, "", err
	}

	now := time.Now().UTC()
	session := &model.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create session")
		return nil, "", err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("Session exchanged")
	return user, session.Token, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apierr.Unauthenticated("missing bearer token")
	}
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apierr.Unauthenticated("invalid session token")
	}
	if session.Expired(time.Now()) {
		return nil, apierr.Unauthenticated("session expired")
	}
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.Unauthenticated("session user no longer exists")
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete session on logout")
		return err
	}
	return nil
}

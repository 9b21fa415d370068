package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"talktutor/internal/apierr"
)

const sessionDataPath = "/auth/v1/env/oauth/session-data"

// ProviderIdentity is the profile the external OAuth provider returns for a
// freshly completed login.
type ProviderIdentity struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// SessionProvider exchanges a provider-issued session id for the identity it
// represents.
type SessionProvider interface {
	Resolve(ctx context.Context, sessionID string) (*ProviderIdentity, error)
}

type oauthSessionProvider struct {
	baseURL    string
	httpClient *http.Client
}

func NewOAuthSessionProvider(baseURL string) SessionProvider {
	return &oauthSessionProvider{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (p *oauthSessionProvider) Resolve(ctx context.Context, sessionID string) (*ProviderIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+sessionDataPath, nil)
	if err != nil {
		return nil, fmt.Errorf("creating session data request: %w", err)
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, apierr.Upstream("session provider unreachable: " + err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading session data response: %w", err)
	}
	// The provider answers non-2xx for unknown or already-consumed session ids.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apierr.Unauthenticated("invalid or expired provider session")
	}

	var identity ProviderIdentity
	if err := json.Unmarshal(body, &identity); err != nil {
		return nil, fmt.Errorf("decoding session data response: %w", err)
	}
	if identity.ID == "" {
		return nil, apierr.Unauthenticated("provider session carried no identity")
	}
	return &identity, nil
}

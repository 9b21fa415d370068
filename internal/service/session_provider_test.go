package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"talktutor/internal/apierr"
)

func TestResolveReturnsIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Session-ID"); got != "sess-42" {
			t.Errorf("unexpected session id header %q", got)
		}
		_, _ = w.Write([]byte(`{"id":"google-1","email":"ada@example.com","name":"Ada","picture":"p"}`))
	}))
	defer server.Close()

	identity, err := NewOAuthSessionProvider(server.URL).Resolve(context.Background(), "sess-42")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if identity.ID != "google-1" || identity.Email != "ada@example.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestResolveRejectedSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown session", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewOAuthSessionProvider(server.URL).Resolve(context.Background(), "bad")
	if apiErr, ok := apierr.As(err); !ok || apiErr.Code != apierr.CodeUnauthenticated {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestResolveEmptyIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := NewOAuthSessionProvider(server.URL).Resolve(context.Background(), "sess")
	if apiErr, ok := apierr.As(err); !ok || apiErr.Code != apierr.CodeUnauthenticated {
		t.Fatalf("expected unauthenticated for empty identity, got %v", err)
	}
}

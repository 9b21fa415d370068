package service

import (
	"context"
	"errors"
	"time"

	"talktutor/internal/model"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Upsert(_ context.Context, u *model.User) (*model.User, error) {
	stored, ok := r.users[u.ID]
	if !ok {
		stored = &model.User{ID: u.ID, CreatedAt: time.Now().UTC()}
		r.users[u.ID] = stored
	}
	stored.Email = u.Email
	stored.Name = u.Name
	stored.Picture = u.Picture
	copied := *stored
	return &copied, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	stored, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeUserRepo) SetSubscription(_ context.Context, id string, tier model.PlanTier, expiresAt time.Time) error {
	stored, ok := r.users[id]
	if !ok {
		return errors.New("no such user")
	}
	stored.SubscriptionTier = tier
	stored.SubscriptionExpiresAt = expiresAt
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*model.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*model.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *model.Session) error {
	copied := *s
	r.sessions[s.Token] = &copied
	return nil
}

func (r *fakeSessionRepo) GetByToken(_ context.Context, token string) (*model.Session, error) {
	stored, ok := r.sessions[token]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}

func (r *fakeSessionRepo) EnsureIndexes(_ context.Context) error { return nil }

type fakeAnalysisRepo struct {
	inserted  []*model.Analysis
	listLimit int
	byID      map[string]*model.Analysis
	insertErr error
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{byID: make(map[string]*model.Analysis)}
}

func (r *fakeAnalysisRepo) Insert(_ context.Context, a *model.Analysis) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, a)
	return nil
}

func (r *fakeAnalysisRepo) GetByID(_ context.Context, id string) (*model.Analysis, error) {
	return r.byID[id], nil
}

func (r *fakeAnalysisRepo) ListByUser(_ context.Context, userID string, limit int) ([]model.Analysis, error) {
	r.listLimit = limit
	var out []model.Analysis
	for _, a := range r.inserted {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAnalysisRepo) EnsureIndexes(_ context.Context) error { return nil }

type fakeSessionProvider struct {
	identity *ProviderIdentity
	err      error
}

func (p *fakeSessionProvider) Resolve(_ context.Context, _ string) (*ProviderIdentity, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.identity, nil
}

type fakeChatClient struct {
	replies []string
	err     error
	calls   []ChatRequest
}

func (c *fakeChatClient) Complete(_ context.Context, req ChatRequest) (string, error) {
	c.calls = append(c.calls, req)
	if c.err != nil {
		return "", c.err
	}
	idx := len(c.calls) - 1
	if idx >= len(c.replies) {
		idx = len(c.replies) - 1
	}
	return c.replies[idx], nil
}

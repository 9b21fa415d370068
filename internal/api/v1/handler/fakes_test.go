package handler

import (
	"context"
	"net/http"
	"time"

	"talktutor/internal/apierr"
	"talktutor/internal/middleware"
	"talktutor/internal/model"
	"talktutor/internal/service"

	"github.com/rs/zerolog"
)

const testToken = "test-session-token"

// fakeAuthService admits exactly one token and returns the configured user.
type fakeAuthService struct {
	user        *model.User
	exchanged   []string
	loggedOut   []string
	exchangeErr error
}

func (f *fakeAuthService) ExchangeSession(_ context.Context, sessionID string) (*model.User, string, error) {
	f.exchanged = append(f.exchanged, sessionID)
	if f.exchangeErr != nil {
		return nil, "", f.exchangeErr
	}
	return f.user, testToken, nil
}

func (f *fakeAuthService) Authenticate(_ context.Context, token string) (*model.User, error) {
	if token == testToken && f.user != nil {
		return f.user, nil
	}
	return nil, apierr.Unauthenticated("invalid session token")
}

func (f *fakeAuthService) Logout(_ context.Context, token string) error {
	f.loggedOut = append(f.loggedOut, token)
	return nil
}

type coachCall struct {
	text        string
	imageBase64 string
	tone        string
	goal        string
	userContext string
}

type fakeCoachService struct {
	textCalls  []coachCall
	imageCalls []coachCall
	historyLim []int
	getIDs     []string

	analysis *model.Analysis
	history  []model.Analysis
	err      error
}

func (f *fakeCoachService) AnalyzeText(_ context.Context, _ *model.User, text, tone, goal string) (*model.Analysis, error) {
	f.textCalls = append(f.textCalls, coachCall{text: text, tone: tone, goal: goal})
	return f.analysis, f.err
}

func (f *fakeCoachService) AnalyzeImage(_ context.Context, _ *model.User, imageBase64, tone, goal, userContext string) (*model.Analysis, error) {
	f.imageCalls = append(f.imageCalls, coachCall{imageBase64: imageBase64, tone: tone, goal: goal, userContext: userContext})
	return f.analysis, f.err
}

func (f *fakeCoachService) History(_ context.Context, _ *model.User, limit int) ([]model.Analysis, error) {
	f.historyLim = append(f.historyLim, limit)
	return f.history, f.err
}

func (f *fakeCoachService) Get(_ context.Context, _ *model.User, id string) (*model.Analysis, error) {
	f.getIDs = append(f.getIDs, id)
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

type activateCall struct {
	tier   model.PlanTier
	period string
}

type fakePlanService struct {
	catalog     []model.SubscriptionPlan
	activations []activateCall
	expiresAt   time.Time
	err         error
}

func (f *fakePlanService) Plans() []model.SubscriptionPlan { return f.catalog }

func (f *fakePlanService) Authorize(_ *model.User, _ model.PlanTier) (*service.Entitlement, error) {
	return &service.Entitlement{Tier: model.TierStandard, Model: "gpt-5-mini", SuggestionCount: 3}, nil
}

func (f *fakePlanService) Activate(_ context.Context, _ *model.User, tier model.PlanTier, billingPeriod string) (time.Time, error) {
	f.activations = append(f.activations, activateCall{tier: tier, period: billingPeriod})
	if f.err != nil {
		return time.Time{}, f.err
	}
	return f.expiresAt, nil
}

func testUser() *model.User {
	return &model.User{ID: "user-1", Email: "sam@example.com", Name: "Sam"}
}

// testAuthMw runs the real auth middleware against the single-token fake.
func testAuthMw(user *model.User) func(http.Handler) http.Handler {
	return middleware.Auth(&fakeAuthService{user: user}, zerolog.Nop(), false)
}

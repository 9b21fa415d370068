package service

import (
	"context"
	"fmt"
	"time"

	"talktutor/internal/apierr"
	"talktutor/internal/model"
	"talktutor/internal/repository"

	"github.com/rs/zerolog"
)

// Billing periods accepted by Activate.
const (
	BillingMonthly = "monthly"
	BillingAnnual  = "annual"
)

// Entitlement is what an active tier grants: the AI model used for the user's
// requests and the suggestion cap applied to every reply.
type Entitlement struct {
	Tier            model.PlanTier
	Model           string
	SuggestionCount int
}

// PlanService owns the read-only tier catalog and the plan gate.
type PlanService interface {
	Plans() []model.SubscriptionPlan
	// Authorize checks the user's subscription and returns the tier's
	// entitlement. minTier may be empty when any active tier is enough.
	Authorize(user *model.User, minTier model.PlanTier) (*Entitlement, error)
	// Activate sets the user's tier with an expiry computed from the billing
	// period and returns the new expiry. Mock payment path: no charge occurs.
	Activate(ctx context.Context, user *model.User, tier model.PlanTier, billingPeriod string) (time.Time, error)
}

type planService struct {
	users   repository.UserRepository
	catalog []model.SubscriptionPlan
	logger  zerolog.Logger
}

func NewPlanService(users repository.UserRepository, logger zerolog.Logger) PlanService {
	return &planService{
		users:  users,
		logger: logger.With().Str("service", "PlanService").Logger(),
		catalog: []model.SubscriptionPlan{
			{
				Tier:              model.TierStandard,
				Name:              "Standard",
				PriceMonthlyCents: 999,
				PriceAnnualCents:  7999,
				Model:             "gpt-5-mini",
				SuggestionCount:   3,
				Features: []string{
					"Unlimited conversation analysis",
					"AI-powered response suggestions",
					"Image and text analysis",
					"All communication tones",
					"All goal types",
					"History & saved analyses",
				},
			},
			{
				Tier:              model.TierPremium,
				Name:              "Premium",
				PriceMonthlyCents: 1499,
				PriceAnnualCents:  11999,
				Model:             "gpt-5",
				SuggestionCount:   4,
				Features: []string{
					"Everything in Standard",
					"Smarter coaching model",
					"4 suggestions per analysis",
					"Priority support",
				},
			},
			{
				Tier:              model.TierPro,
				Name:              "Pro",
				PriceMonthlyCents: 1999,
				PriceAnnualCents:  15999,
				Model:             "gpt-5.2",
				SuggestionCount:   5,
				Features: []string{
					"Everything in Premium",
					"Most capable coaching model",
					"5 suggestions per analysis",
				},
			},
		},
	}
}

func (s *planService) Plans() []model.SubscriptionPlan {
	return s.catalog
}

func (s *planService) Authorize(user *model.User, minTier model.PlanTier) (*Entitlement, error) {
	if !user.HasSubscription(time.Now()) {
		return nil, apierr.PaymentRequired("an active subscription is required")
	}
	plan := s.planForTier(user.SubscriptionTier)
	if plan == nil {
		// A tier stored before a catalog change no longer exists.
		return nil, apierr.PaymentRequired("subscription tier is no longer available")
	}
	if minTier != "" && user.SubscriptionTier.Rank() < minTier.Rank() {
		return nil, apierr.Forbidden(fmt.Sprintf("this feature requires the %s plan or higher", minTier))
	}
	return &Entitlement{
		Tier:            plan.Tier,
		Model:           plan.Model,
		SuggestionCount: plan.SuggestionCount,
	}, nil
}

func (s *planService) Activate(ctx context.Context, user *model.User, tier model.PlanTier, billingPeriod string) (time.Time, error) {
	if s.planForTier(tier) == nil {
		return time.Time{}, apierr.Validation("unknown plan", string(tier))
	}

	var expiresAt time.Time
	switch billingPeriod {
	case BillingMonthly:
		expiresAt = time.Now().UTC().Add(30 * 24 * time.Hour)
	case BillingAnnual:
		expiresAt = time.Now().UTC().Add(365 * 24 * time.Hour)
	default:
		return time.Time{}, apierr.Validation("unknown billing period", billingPeriod)
	}

	if err := s.users.SetSubscription(ctx, user.ID, tier, expiresAt); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Str("tier", string(tier)).Msg("Failed to activate subscription")
		return time.Time{}, err
	}
	s.logger.Info().Str("user_id", user.ID).Str("tier", string(tier)).Str("billing_period", billingPeriod).Msg("Subscription activated")
	return expiresAt, nil
}

func (s *planService) planForTier(tier model.PlanTier) *model.SubscriptionPlan {
	for i := range s.catalog {
		if s.catalog[i].Tier == tier {
			return &s.catalog[i]
		}
	}
	return nil
}

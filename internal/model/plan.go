package model

// PlanTier is a named subscription level. Tiers are strictly ordered:
// standard < premium < pro.
type PlanTier string

const (
	TierStandard PlanTier = "standard"
	TierPremium  PlanTier = "premium"
	TierPro      PlanTier = "pro"
)

// Rank returns the tier's position in the fixed ordering. Unknown or empty
// tiers rank below every real tier.
func (t PlanTier) Rank() int {
	switch t {
	case TierStandard:
		return 1
	case TierPremium:
		return 2
	case TierPro:
		return 3
	default:
		return 0
	}
}

// SubscriptionPlan is one entry of the read-only plan catalog: what a tier
// costs and what it entitles the user to.
type SubscriptionPlan struct {
	Tier             PlanTier `json:"tier"`
	Name             string   `json:"name"`
	PriceMonthlyCents int     `json:"price_monthly_cents"`
	PriceAnnualCents  int     `json:"price_annual_cents"`
	Model            string   `json:"model"`
	SuggestionCount  int      `json:"suggestion_count"`
	Features         []string `json:"features"`
}

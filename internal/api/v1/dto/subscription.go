package dto

import (
	"time"

	"talktutor/internal/model"
)

type PlanDTO struct {
	Tier              string   `json:"tier"`
	Name              string   `json:"name"`
	PriceMonthlyCents int      `json:"price_monthly_cents"`
	PriceAnnualCents  int      `json:"price_annual_cents"`
	Model             string   `json:"model"`
	SuggestionCount   int      `json:"suggestion_count"`
	Features          []string `json:"features"`
}

type PlansResponseDTO struct {
	Plans []PlanDTO `json:"plans"`
}

func NewPlansResponse(plans []model.SubscriptionPlan) PlansResponseDTO {
	out := PlansResponseDTO{Plans: make([]PlanDTO, 0, len(plans))}
	for _, p := range plans {
		out.Plans = append(out.Plans, PlanDTO{
			Tier:              string(p.Tier),
			Name:              p.Name,
			PriceMonthlyCents: p.PriceMonthlyCents,
			PriceAnnualCents:  p.PriceAnnualCents,
			Model:             p.Model,
			SuggestionCount:   p.SuggestionCount,
			Features:          p.Features,
		})
	}
	return out
}

type ActivateRequestDTO struct {
	Plan          string `json:"plan" validate:"required,oneof=standard premium pro"`
	BillingPeriod string `json:"billing_period" validate:"required,oneof=monthly annual"`
}

type ActivateResponseDTO struct {
	Success   bool      `json:"success"`
	Plan      string    `json:"plan"`
	ExpiresAt time.Time `json:"expires_at"`
}

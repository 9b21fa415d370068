package dto

import (
	"time"

	"talktutor/internal/model"
)

type AnalyzeTextRequestDTO struct {
	ConversationText string `json:"conversation_text" validate:"required,min=1,max=10000"`
	Tone             string `json:"tone" validate:"required"`
	Goal             string `json:"goal" validate:"required"`
}

type AnalyzeImageRequestDTO struct {
	ImageBase64 string `json:"image_base64" validate:"required,base64"`
	Tone        string `json:"tone" validate:"required"`
	Goal        string `json:"goal" validate:"required"`
	Context     string `json:"context,omitempty"`
}

// AnalysisResponseDTO is returned by both analyze endpoints.
type AnalysisResponseDTO struct {
	AnalysisID   string   `json:"analysis_id"`
	Suggestions  []string `json:"suggestions"`
	AnalysisText string   `json:"analysis_text"`
	ToneUsed     string   `json:"tone_used"`
	GoalUsed     string   `json:"goal_used"`
}

func NewAnalysisResponse(a *model.Analysis) AnalysisResponseDTO {
	return AnalysisResponseDTO{
		AnalysisID:   a.ID.Hex(),
		Suggestions:  a.Suggestions,
		AnalysisText: a.AnalysisText,
		ToneUsed:     a.Tone,
		GoalUsed:     a.Goal,
	}
}

// HistoryItemDTO is a listing entry. Image payloads are never serialized in
// listings; has_image marks the records that stored one.
type HistoryItemDTO struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	ConversationText string    `json:"conversation_text,omitempty"`
	HasImage         bool      `json:"has_image,omitempty"`
	ImageContext     string    `json:"image_context,omitempty"`
	UserContext      string    `json:"user_context,omitempty"`
	Tone             string    `json:"tone"`
	Goal             string    `json:"goal"`
	AnalysisText     string    `json:"analysis"`
	Suggestions      []string  `json:"suggestions"`
	PlanTier         string    `json:"plan_tier"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewHistoryItem(a *model.Analysis) HistoryItemDTO {
	return HistoryItemDTO{
		ID:               a.ID.Hex(),
		Type:             a.Type,
		ConversationText: a.ConversationText,
		HasImage:         a.ImageBase64 != "",
		ImageContext:     a.ImageContext,
		UserContext:      a.UserContext,
		Tone:             a.Tone,
		Goal:             a.Goal,
		AnalysisText:     a.AnalysisText,
		Suggestions:      a.Suggestions,
		PlanTier:         string(a.PlanTier),
		CreatedAt:        a.CreatedAt,
	}
}

type HistoryResponseDTO struct {
	Analyses []HistoryItemDTO `json:"analyses"`
}

// AnalysisDetailDTO is the full stored record, image payload included.
type AnalysisDetailDTO struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	ConversationText string    `json:"conversation_text,omitempty"`
	ImageBase64      string    `json:"image_base64,omitempty"`
	ImageContext     string    `json:"image_context,omitempty"`
	UserContext      string    `json:"user_context,omitempty"`
	Tone             string    `json:"tone"`
	Goal             string    `json:"goal"`
	AnalysisText     string    `json:"analysis"`
	Suggestions      []string  `json:"suggestions"`
	RawResponse      string    `json:"raw_response"`
	PlanTier         string    `json:"plan_tier"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewAnalysisDetail(a *model.Analysis) AnalysisDetailDTO {
	return AnalysisDetailDTO{
		ID:               a.ID.Hex(),
		Type:             a.Type,
		ConversationText: a.ConversationText,
		ImageBase64:      a.ImageBase64,
		ImageContext:     a.ImageContext,
		UserContext:      a.UserContext,
		Tone:             a.Tone,
		Goal:             a.Goal,
		AnalysisText:     a.AnalysisText,
		Suggestions:      a.Suggestions,
		RawResponse:      a.RawResponse,
		PlanTier:         string(a.PlanTier),
		CreatedAt:        a.CreatedAt,
	}
}

package service

import (
	"context"
	"time"

	"talktutor/internal/apierr"
	"talktutor/internal/model"
	"talktutor/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// CoachService orchestrates the analysis flow: plan gate, LLM calls, reply
// parsing and persistence. Requests run sequentially within their own
// goroutine; nothing is retried or queued.
type CoachService interface {
	AnalyzeText(ctx context.Context, user *model.User, text, tone, goal string) (*model.Analysis, error)
	AnalyzeImage(ctx context.Context, user *model.User, imageBase64, tone, goal, userContext string) (*model.Analysis, error)
	// History returns the user's analyses newest first. Image payloads are kept
	// on the records; listing responses strip them at the DTO layer.
	History(ctx context.Context, user *model.User, limit int) ([]model.Analysis, error)
	Get(ctx context.Context, user *model.User, id string) (*model.Analysis, error)
}

type coachService struct {
	analyses repository.AnalysisRepository
	plans    PlanService
	chat     ChatClient
	logger   zerolog.Logger
}

func NewCoachService(
	analyses repository.AnalysisRepository,
	plans PlanService,
	chat ChatClient,
	logger zerolog.Logger,
) CoachService {
	return &coachService{
		analyses: analyses,
		plans:    plans,
		chat:     chat,
		logger:   logger.With().Str("service", "CoachService").Logger(),
	}
}

func (s *coachService) AnalyzeText(ctx context.Context, user *model.User, text, tone, goal string) (*model.Analysis, error) {
	ent, err := s.plans.Authorize(user, "")
	if err != nil {
		return nil, err
	}

	analysis, suggestions, raw, err := s.generateSuggestions(ctx, ent, text, tone, goal)
	if err != nil {
		return nil, err
	}

	record := &model.Analysis{
		UserID:           user.ID,
		Type:             model.AnalysisTypeText,
		ConversationText: text,
		Tone:             tone,
		Goal:             goal,
		AnalysisText:     analysis,
		Suggestions:      suggestions,
		RawResponse:      raw,
		PlanTier:         ent.Tier,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.analyses.Insert(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to store text analysis")
		return nil, err
	}
	return record, nil
}

func (s *coachService) AnalyzeImage(ctx context.Context, user *model.User, imageBase64, tone, goal, userContext string) (*model.Analysis, error) {
	ent, err := s.plans.Authorize(user, "")
	if err != nil {
		return nil, err
	}

	// Vision pass first: the raw description becomes the conversation context.
	imageContext, err := s.chat.Complete(ctx, ChatRequest{
		Model:       ent.Model,
		System:      visionSystemPrompt,
		Prompt:      buildVisionPrompt(userContext),
		ImageBase64: imageBase64,
	})
	if err != nil {
		return nil, apierr.Upstream("failed to analyze image: " + err.Error())
	}

	analysis, suggestions, raw, err := s.generateSuggestions(ctx, ent, imageContext, tone, goal)
	if err != nil {
		return nil, err
	}

	record := &model.Analysis{
		UserID:       user.ID,
		Type:         model.AnalysisTypeImage,
		ImageBase64:  imageBase64,
		ImageContext: imageContext,
		UserContext:  userContext,
		Tone:         tone,
		Goal:         goal,
		AnalysisText: analysis,
		Suggestions:  suggestions,
		RawResponse:  raw,
		PlanTier:     ent.Tier,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.analyses.Insert(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to store image analysis")
		return nil, err
	}
	return record, nil
}

func (s *coachService) generateSuggestions(ctx context.Context, ent *Entitlement, conversationContext, tone, goal string) (string, []string, string, error) {
	raw, err := s.chat.Complete(ctx, ChatRequest{
		Model:  ent.Model,
		System: buildCoachPrompt(conversationContext, tone, goal, ent.SuggestionCount),
		Prompt: coachUserPrompt,
	})
	if err != nil {
		return "", nil, "", apierr.Upstream("failed to generate suggestions: " + err.Error())
	}
	analysis, suggestions := parseCoachReply(raw, ent.SuggestionCount)
	return analysis, suggestions, raw, nil
}

func (s *coachService) History(ctx context.Context, user *model.User, limit int) ([]model.Analysis, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	analyses, err := s.analyses.ListByUser(ctx, user.ID, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list analyses")
		return nil, err
	}
	return analyses, nil
}

func (s *coachService) Get(ctx context.Context, user *model.User, id string) (*model.Analysis, error) {
	analysis, err := s.analyses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if analysis == nil {
		return nil, apierr.NotFound("analysis not found")
	}
	if analysis.UserID != user.ID {
		return nil, apierr.Forbidden("analysis belongs to another user")
	}
	return analysis, nil
}

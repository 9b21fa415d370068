package service

import (
	"fmt"
	"strings"
)

// The LLM is asked to reply in a line-oriented marker format. The parser below
// is the only code that knows about it, so the format can change in one place.
const (
	analysisMarker   = "ANALYSIS:"
	suggestionMarker = "SUGGESTION"

	// Returned when the reply carries no ANALYSIS line at all. Clients always
	// receive a non-empty analysis sentence.
	fallbackAnalysis = "Here's what I found in your conversation."

	coachUserPrompt = "Please provide your analysis and suggestions."
)

func buildCoachPrompt(conversationContext, tone, goal string, suggestionCount int) string {
	return fmt.Sprintf(`You are a social skills coach helping users improve their communication.

Current Conversation Context: %s

User's Desired Tone: %s
User's Goal: %s

Provide:
1. A brief analysis of the current situation (2-3 sentences)
2. %d different response suggestions that match the desired tone and achieve the goal
3. Brief explanation for each suggestion (1 sentence)

Format your response as:
ANALYSIS: [your analysis]
%s`, conversationContext, tone, goal, suggestionCount, suggestionLinesHint(suggestionCount))
}

func suggestionLinesHint(count int) string {
	lines := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		lines = append(lines, fmt.Sprintf("SUGGESTION %d: [response] - [reason]", i))
	}
	return strings.Join(lines, "\n")
}

const visionSystemPrompt = `You are analyzing an image to help understand social context.
This could be:
- A screenshot of a text conversation
- A social media post/story
- A photo someone shared
- A profile picture

Extract all visible text, describe the visual content, and identify any emotional tone or context.
Be concise but thorough.`

func buildVisionPrompt(userContext string) string {
	prompt := "Analyze this image and extract all text, describe the content, and identify any social context or emotional tone."
	if strings.TrimSpace(userContext) != "" {
		prompt += "\n\nAdditional context provided by user: " + userContext
	}
	return prompt
}

// parseCoachReply scans the raw reply line by line. A line starting with
// "ANALYSIS:" fills the analysis sentence; lines starting with "SUGGESTION"
// contribute the text after their first colon. Everything else is ignored.
// Suggestions are capped at max; a missing analysis line falls back to a
// fixed placeholder instead of failing.
func parseCoachReply(raw string, max int) (analysis string, suggestions []string) {
	suggestions = make([]string, 0, max)
	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, analysisMarker):
			analysis = strings.TrimSpace(strings.TrimPrefix(line, analysisMarker))
		case strings.HasPrefix(line, suggestionMarker):
			text := line
			if _, rest, found := strings.Cut(line, ":"); found {
				text = rest
			}
			if text = strings.TrimSpace(text); text != "" {
				suggestions = append(suggestions, text)
			}
		}
	}
	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}
	if analysis == "" {
		analysis = fallbackAnalysis
	}
	return analysis, suggestions
}

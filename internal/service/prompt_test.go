package service

import (
	"strings"
	"testing"
)

func TestParseCoachReplyCapsSuggestions(t *testing.T) {
	raw := "ANALYSIS: hi\nSUGGESTION 1: a - b\nSUGGESTION 2: c - d\nSUGGESTION 3: e - f\nSUGGESTION 4: g - h"

	analysis, suggestions := parseCoachReply(raw, 3)
	if analysis != "hi" {
		t.Fatalf("expected analysis %q, got %q", "hi", analysis)
	}
	want := []string{"a - b", "c - d", "e - f"}
	if len(suggestions) != len(want) {
		t.Fatalf("expected %d suggestions, got %d: %v", len(want), len(suggestions), suggestions)
	}
	for i, s := range want {
		if suggestions[i] != s {
			t.Fatalf("suggestion %d: expected %q, got %q", i, s, suggestions[i])
		}
	}
}

func TestParseCoachReplyCapVariants(t *testing.T) {
	raw := strings.Join([]string{
		"ANALYSIS: situation summary",
		"SUGGESTION 1: one",
		"SUGGESTION 2: two",
		"SUGGESTION 3: three",
		"SUGGESTION 4: four",
		"SUGGESTION 5: five",
		"SUGGESTION 6: six",
	}, "\n")

	for _, max := range []int{3, 4, 5} {
		_, suggestions := parseCoachReply(raw, max)
		if len(suggestions) != max {
			t.Errorf("max=%d: expected %d suggestions, got %d", max, max, len(suggestions))
		}
	}
}

func TestParseCoachReplyMissingAnalysisFallsBack(t *testing.T) {
	analysis, suggestions := parseCoachReply("SUGGESTION 1: only one", 3)
	if analysis != fallbackAnalysis {
		t.Fatalf("expected fallback analysis, got %q", analysis)
	}
	if len(suggestions) != 1 || suggestions[0] != "only one" {
		t.Fatalf("unexpected suggestions: %v", suggestions)
	}
}

func TestParseCoachReplyFewerSuggestionsThanEntitled(t *testing.T) {
	raw := "ANALYSIS: short reply\nSUGGESTION 1: just this"
	analysis, suggestions := parseCoachReply(raw, 5)
	if analysis != "short reply" {
		t.Fatalf("unexpected analysis %q", analysis)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
}

func TestParseCoachReplyIgnoresUnknownLines(t *testing.T) {
	raw := strings.Join([]string{
		"Here is my take:",
		"",
		"ANALYSIS: clean",
		"some filler the model added",
		"SUGGESTION 1: keep it light",
	}, "\n")
	analysis, suggestions := parseCoachReply(raw, 3)
	if analysis != "clean" {
		t.Fatalf("unexpected analysis %q", analysis)
	}
	if len(suggestions) != 1 || suggestions[0] != "keep it light" {
		t.Fatalf("unexpected suggestions: %v", suggestions)
	}
}

func TestBuildCoachPromptEmbedsInputs(t *testing.T) {
	prompt := buildCoachPrompt("we argued about dinner", "empathetic", "resolve", 4)

	for _, want := range []string{
		"we argued about dinner",
		"empathetic",
		"resolve",
		"4 different response suggestions",
		"ANALYSIS:",
		"SUGGESTION 4:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "SUGGESTION 5:") {
		t.Error("prompt asked for more suggestion lines than entitled")
	}
}

func TestBuildVisionPromptAppendsUserContext(t *testing.T) {
	base := buildVisionPrompt("")
	if strings.Contains(base, "Additional context") {
		t.Error("empty context should not add the context section")
	}
	withCtx := buildVisionPrompt("screenshot from a dating app")
	if !strings.Contains(withCtx, "screenshot from a dating app") {
		t.Error("user context missing from vision prompt")
	}
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"talktutor/internal/config"
)

// ChatRequest is one outbound LLM call. An ImageBase64 payload, when present,
// is attached as a multimodal input part alongside the prompt.
type ChatRequest struct {
	Model       string
	System      string
	Prompt      string
	ImageBase64 string
}

// ChatClient abstracts the LLM provider for one-shot completions.
type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// OpenAIClient calls the OpenAI Responses API. One request, no retries; a
// provider failure is the caller's to classify.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIClient(cfg *config.Config) *OpenAIClient {
	timeoutSeconds := cfg.AITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}
	return &OpenAIClient{
		apiKey:  strings.TrimSpace(cfg.OpenAIAPIKey),
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.OpenAIBaseURL), "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

type responsesContentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type responsesInputBlock struct {
	Role    string                 `json:"role"`
	Content []responsesContentPart `json:"content"`
}

func (c *OpenAIClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("OPENAI_API_KEY is not configured")
	}
	if strings.TrimSpace(req.Model) == "" {
		return "", errors.New("chat request model is empty")
	}

	input := make([]responsesInputBlock, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		input = append(input, responsesInputBlock{
			Role:    "system",
			Content: []responsesContentPart{{Type: "input_text", Text: req.System}},
		})
	}
	userContent := []responsesContentPart{{Type: "input_text", Text: req.Prompt}}
	if req.ImageBase64 != "" {
		userContent = append(userContent, responsesContentPart{
			Type:     "input_image",
			ImageURL: "data:image/jpeg;base64," + req.ImageBase64,
		})
	}
	input = append(input, responsesInputBlock{Role: "user", Content: userContent})

	payload := map[string]any{
		"model": req.Model,
		"input": input,
	}
	bodyRaw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(bodyRaw))
	if err != nil {
		return "", err
	}
	request.Header.Set("Authorization", "Bearer "+c.apiKey)
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", fmt.Errorf("openai responses error (%d): %s", response.StatusCode, strings.TrimSpace(string(responseBody)))
	}

	answer := extractResponsesText(responseBody)
	if answer == "" {
		return "", errors.New("openai response contained no output text")
	}
	return answer, nil
}

// extractResponsesText pulls the assistant text out of a Responses API body,
// preferring the aggregate output_text field when it is present.
func extractResponsesText(body []byte) string {
	var parsed struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if text := strings.TrimSpace(parsed.OutputText); text != "" {
		return text
	}

	parts := make([]string, 0)
	for _, block := range parsed.Output {
		for _, content := range block.Content {
			if content.Type != "output_text" && content.Type != "text" {
				continue
			}
			if text := strings.TrimSpace(content.Text); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

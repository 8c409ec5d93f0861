package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/innov8-labs/innov8/internal/model"
)

// OpenAIProvider generates validation reports using the OpenAI chat API.
type OpenAIProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIProvider creates an OpenAI-backed validation provider.
// baseURL defaults to the public API when empty.
func NewOpenAIProvider(apiKey, model, baseURL string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIProvider{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Name identifies the provider.
func (p *OpenAIProvider) Name() string { return "openai" }

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

const systemPrompt = `You are a startup idea validator. Analyze the idea and respond with a JSON object with exactly these fields:
market_analysis (string), competitor_analysis (array of strings), technical_feasibility (string), recommendations (array of strings), desirability_score (integer 1-100), validity_score (integer 1-100), feasibility_score (integer 1-100), overall_score (integer 1-100).`

// Validate asks the chat API for a structured report. The response is
// parsed as JSON directly into the report shape; missing or malformed
// output surfaces as an error so the caller can fall back.
func (p *OpenAIProvider) Validate(ctx context.Context, idea model.Idea) (model.ValidationReport, error) {
	profile := profileFor(idea.Category)
	userPrompt := fmt.Sprintf(
		"Idea: %s\nCategory: %s\nDescription: %s\n\nMarket context: the %s market is about $%.0fB, growing %.0f%% per year. Known competitors include %s.",
		idea.Title, idea.Category, idea.Description,
		normalizeCategory(idea.Category), profile.MarketSizeB, profile.GrowthPct,
		strings.Join(profile.Competitors, ", "),
	)

	reqBody, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    0.3,
		ResponseFormat: &respFormat{Type: "json_object"},
	})
	if err != nil {
		return model.ValidationReport{}, fmt.Errorf("validation: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return model.ValidationReport{}, fmt.Errorf("validation: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return model.ValidationReport{}, fmt.Errorf("validation: send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.ValidationReport{}, fmt.Errorf("validation: read response: %w", err)
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return model.ValidationReport{}, fmt.Errorf("validation: unmarshal response: %w", err)
	}

	if result.Error != nil {
		return model.ValidationReport{}, fmt.Errorf("validation: openai error: %s: %s", result.Error.Type, result.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return model.ValidationReport{}, fmt.Errorf("validation: unexpected status %d: %s", resp.StatusCode, string(body))
	}
	if len(result.Choices) == 0 {
		return model.ValidationReport{}, fmt.Errorf("validation: empty response")
	}

	var report model.ValidationReport
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &report); err != nil {
		return model.ValidationReport{}, fmt.Errorf("validation: parse report: %w", err)
	}

	report.Sources = append(report.Sources, model.Source{
		Type:   "ai_analysis",
		Source: "OpenAI " + p.model,
		URL:    "https://platform.openai.com/",
		AIUsed: p.model,
	})
	return report, nil
}

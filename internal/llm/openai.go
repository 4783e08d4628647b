package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/msyaifulbhr/hscode/internal/common"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

const openAISystemPrompt = "You are an expert Harmonized System (HS) code classifier. " +
	"You MUST respond with ONLY a valid JSON object with the fields analysisText and codeAndDescription. " +
	"Do not include any explanatory text, markdown formatting, or commentary before or after the JSON. " +
	"Start your response directly with { and end with }."

// openAIClient implements the Client interface for the OpenAI API.
type openAIClient struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	endpoint    string
	temperature float64
	maxTokens   int
}

// newOpenAIClient creates a new OpenAI API client.
func newOpenAIClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 400
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = openAIEndpoint
	}

	return &openAIClient{
		apiKey:      cfg.APIKey,
		model:       model,
		endpoint:    endpoint,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// Classify sends a classification request to OpenAI.
func (c *openAIClient) Classify(ctx context.Context, prompt string) (ContractOutput, error) {
	requestBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": openAISystemPrompt,
			},
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return ContractOutput{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(string(jsonBody)))
	if err != nil {
		return ContractOutput{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ContractOutput{}, fmt.Errorf("%w: %v", common.ErrInferenceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ContractOutput{}, fmt.Errorf("%w: read response: %v", common.ErrInferenceUnavailable, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return ContractOutput{}, fmt.Errorf("%w: OpenAI API (status 429): %s", common.ErrQuotaExhausted, string(body))
	}

	if resp.StatusCode != http.StatusOK {
		return ContractOutput{}, fmt.Errorf("%w: OpenAI API error (status %d): %s",
			common.ErrInferenceUnavailable, resp.StatusCode, string(body))
	}

	var response openAIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return ContractOutput{}, fmt.Errorf("%w: parse response envelope: %v", common.ErrInvalidInferenceOutput, err)
	}

	if len(response.Choices) == 0 {
		return ContractOutput{}, fmt.Errorf("%w: no completion choices returned", common.ErrInvalidInferenceOutput)
	}

	return parseContractOutput(response.Choices[0].Message.Content)
}

// openAIResponse represents the OpenAI API response structure.
type openAIResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
		Index        int    `json:"index"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Created int64 `json:"created"`
}

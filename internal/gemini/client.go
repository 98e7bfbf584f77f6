package gemini

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
)

const (
	defaultBaseURL         = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel           = "gemini-1.5-flash-latest"
	defaultMaxOutputTokens = 2048
	defaultTemperature     = 0.2
)

// ErrBlocked marks a request or response the service refused on safety
// grounds. Callers must not surface the block details to the end user.
var ErrBlocked = errors.New("generation blocked by safety settings")

// GenerationConfig holds the sampling settings sent with every request.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// DefaultGenerationConfig favors near-deterministic extraction over
// creative variation.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:     defaultTemperature,
		TopP:            1,
		TopK:            1,
		MaxOutputTokens: defaultMaxOutputTokens,
	}
}

// SafetySetting maps a harm category to a blocking threshold.
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// DefaultSafetySettings blocks medium-and-above content in every category.
func DefaultSafetySettings() []SafetySetting {
	const threshold = "BLOCK_MEDIUM_AND_ABOVE"
	return []SafetySetting{
		{Category: "HARM_CATEGORY_HARASSMENT", Threshold: threshold},
		{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: threshold},
		{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: threshold},
		{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: threshold},
	}
}

// Client is a Gemini API client for event-field extraction
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	timezone   string
	genConfig  GenerationConfig
	safety     []SafetySetting
	httpClient *http.Client
}

// NewClient creates a new Gemini API client
func NewClient(apiKey, model, timezone string, genConfig GenerationConfig) *Client {
	if model == "" {
		model = defaultModel
	}
	if genConfig.Temperature <= 0 {
		genConfig.Temperature = defaultTemperature
	}
	if genConfig.TopP <= 0 {
		genConfig.TopP = 1
	}
	if genConfig.TopK <= 0 {
		genConfig.TopK = 1
	}
	if genConfig.MaxOutputTokens <= 0 {
		genConfig.MaxOutputTokens = defaultMaxOutputTokens
	}

	return &Client{
		apiKey:    apiKey,
		model:     model,
		baseURL:   defaultBaseURL,
		timezone:  timezone,
		genConfig: genConfig,
		safety:    DefaultSafetySettings(),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// generateRequest represents the generateContent API request structure
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
	SafetySettings   []SafetySetting  `json:"safetySettings"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse represents the generateContent API response structure
type generateResponse struct {
	Candidates     []candidate     `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback,omitempty"`
	Error          *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

type candidate struct {
	Content       content        `json:"content"`
	FinishReason  string         `json:"finishReason"`
	SafetyRatings []safetyRating `json:"safetyRatings"`
}

type promptFeedback struct {
	BlockReason   string         `json:"blockReason"`
	SafetyRatings []safetyRating `json:"safetyRatings"`
}

type safetyRating struct {
	Category    string `json:"category"`
	Probability string `json:"probability"`
}

// Extract sends the extraction prompt for userText and returns the raw
// response text. A safety block returns an error wrapping ErrBlocked; any
// transport or API failure returns a plain error. Nothing is retried.
func (c *Client) Extract(ctx context.Context, userText string) (string, error) {
	req := generateRequest{
		Contents:         []content{{Parts: []part{{Text: ExtractionPrompt(userText, c.timezone)}}}},
		GenerationConfig: c.genConfig,
		SafetySettings:   c.safety,
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp generateResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("API error: %s - %s", apiResp.Error.Status, apiResp.Error.Message)
	}

	if fb := apiResp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		logSafetyRatings(fb.SafetyRatings)
		return "", fmt.Errorf("%w: prompt blocked (%s)", ErrBlocked, fb.BlockReason)
	}

	if len(apiResp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	cand := apiResp.Candidates[0]
	if cand.FinishReason == "SAFETY" {
		logSafetyRatings(cand.SafetyRatings)
		return "", fmt.Errorf("%w: response blocked", ErrBlocked)
	}

	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("empty candidate text (finish reason: %s)", cand.FinishReason)
	}

	return text, nil
}

func logSafetyRatings(ratings []safetyRating) {
	for _, r := range ratings {
		fmt.Printf("Gemini: safety rating %s - %s\n", r.Category, r.Probability)
	}
}

// IsConfigured returns true if the client has an API key
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

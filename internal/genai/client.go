package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the Google Generative Language API endpoint
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Schema describes the structured output the model must return.
// Type values follow the API's convention: ARRAY, OBJECT, STRING.
type Schema struct {
	Type        string             `json:"type,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Description string             `json:"description,omitempty"`
	Nullable    bool               `json:"nullable,omitempty"`
}

// GenerationConfig tunes a generateContent call
type GenerationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
}

// SafetySetting adjusts a harm category threshold
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// InlineData is a binary part returned by image-capable models
type InlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

// Part is one segment of model input or output
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// Content groups parts with an optional role
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Request is the generateContent request body
type Request struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
	SafetySettings   []SafetySetting   `json:"safetySettings,omitempty"`
}

// Candidate is one model completion
type Candidate struct {
	Content      *Content `json:"content,omitempty"`
	FinishReason string   `json:"finishReason,omitempty"`
}

// PromptFeedback reports prompt-level blocking
type PromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// Response is the generateContent response body
type Response struct {
	Candidates     []Candidate     `json:"candidates,omitempty"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
}

// Text returns the concatenated text parts of the first candidate
func (r *Response) Text() string {
	if len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String())
}

// FinishReason returns the first candidate's finish reason, or the prompt
// block reason when no candidate was produced at all.
func (r *Response) FinishReason() string {
	if len(r.Candidates) > 0 && r.Candidates[0].FinishReason != "" && r.Candidates[0].FinishReason != "STOP" {
		return r.Candidates[0].FinishReason
	}
	if r.PromptFeedback != nil {
		return r.PromptFeedback.BlockReason
	}
	return ""
}

// Parts returns the first candidate's parts
func (r *Response) Parts() []Part {
	if len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return nil
	}
	return r.Candidates[0].Content.Parts
}

// APIError is a non-2xx reply from the API
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, truncateStr(e.Body, 200))
}

// Client is a minimal Gemini REST client
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL (DefaultBaseURL if empty)
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

// GenerateContent issues one generateContent call against the given model.
// The API key travels in the x-goog-api-key header. Single attempt, no retry.
func (c *Client) GenerateContent(ctx context.Context, apiKey, model string, reqBody *Request) (*Response, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result Response
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	return &result, nil
}

// truncateStr truncates a string to maxLen bytes
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

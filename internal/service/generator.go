package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cantouch/socialflow-backend/internal/common"
	"github.com/cantouch/socialflow-backend/internal/domain"
	"github.com/cantouch/socialflow-backend/internal/genai"
	"github.com/cantouch/socialflow-backend/internal/repository"
	"github.com/cantouch/socialflow-backend/pkg/logger"
)

// GeneratorConfig selects the models and sampling used for generation
type GeneratorConfig struct {
	TextModel   string
	ImageModel  string
	Temperature float64
}

// Generator issues the generation, refinement and image calls. It holds no
// result state itself; callers own the returned content. Single attempt per
// call, no internal retry.
type Generator struct {
	client      *genai.Client
	historyRepo *repository.GenerationRepository // optional, may be nil
	cfg         GeneratorConfig
}

// NewGenerator creates a Generator
func NewGenerator(client *genai.Client, historyRepo *repository.GenerationRepository, cfg GeneratorConfig) *Generator {
	if cfg.TextModel == "" {
		cfg.TextModel = "gemini-2.5-flash"
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = "gemini-2.5-flash-image"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.75
	}
	return &Generator{client: client, historyRepo: historyRepo, cfg: cfg}
}

// defaultSafetySettings relax blocking to high-severity only across the
// four adjustable harm categories.
var defaultSafetySettings = []genai.SafetySetting{
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_ONLY_HIGH"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_ONLY_HIGH"},
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_ONLY_HIGH"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_ONLY_HIGH"},
}

// socialPostSchema declares the output contract: an array of posts, each
// with required platform and content, optional hashtags, and YouTube
// metadata present only for the YouTube entry.
func socialPostSchema() *genai.Schema {
	return &genai.Schema{
		Type: "ARRAY",
		Items: &genai.Schema{
			Type: "OBJECT",
			Properties: map[string]*genai.Schema{
				"platform": {
					Type:        "STRING",
					Enum:        []string{"X", "Instagram", "Facebook", "YouTube", "LinkedIn", "TikTok"},
					Description: "The social media platform for this post.",
				},
				"content": {
					Type:        "STRING",
					Description: "The main body text of the post. For X, this must be a multi-tweet thread. For TikTok, this must be a script.",
				},
				"hashtags": {
					Type:        "ARRAY",
					Items:       &genai.Schema{Type: "STRING"},
					Description: "Relevant hashtags for the post. Do not include generic ones like #marketing.",
				},
				"youtubeMetadata": {
					Type: "OBJECT",
					Properties: map[string]*genai.Schema{
						"title":     {Type: "STRING", Description: "Click-worthy video title (max 70 chars)"},
						"videoHook": {Type: "STRING", Description: "A visually descriptive hook for the first 5 seconds of the video"},
					},
					Nullable:    true,
					Description: "Specific metadata for YouTube content only.",
				},
			},
			Required: []string{"platform", "content"},
		},
	}
}

// Generate issues one structured content-generation call for the campaign.
// The caller validates required fields first; this only checks the credential
// and the platform selection (via the prompt builder).
func (g *Generator) Generate(ctx context.Context, info domain.BrandInfo, apiKey string) (domain.GeneratedContent, error) {
	if apiKey == "" {
		return nil, common.ErrAPIKeyMissing
	}

	prompt, err := BuildContentPrompt(info)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := g.client.GenerateContent(ctx, apiKey, g.cfg.TextModel, &genai.Request{
		Contents: []genai.Content{{Parts: []genai.Part{{Text: prompt}}}},
		GenerationConfig: &genai.GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   socialPostSchema(),
			Temperature:      g.cfg.Temperature,
		},
		SafetySettings: defaultSafetySettings,
	})
	if err != nil {
		err = normalizeAuthError(err)
		g.recordHistory(info, "failed", err, time.Since(start))
		return nil, err
	}

	text := resp.Text()
	if text == "" {
		if reason := resp.FinishReason(); reason != "" {
			err = &common.GenerationBlockedError{Reason: reason}
		} else {
			err = common.ErrEmptyResponse
		}
		g.recordHistory(info, "failed", err, time.Since(start))
		return nil, err
	}

	content, err := parseGeneratedContent(text)
	if err != nil {
		g.recordHistory(info, "failed", err, time.Since(start))
		return nil, err
	}

	g.recordHistory(info, "success", nil, time.Since(start))
	return content, nil
}

// parseGeneratedContent enforces the response contract: valid JSON, and
// platform plus content present on every element, each platform at most once.
func parseGeneratedContent(text string) (domain.GeneratedContent, error) {
	var content domain.GeneratedContent
	if err := json.Unmarshal([]byte(extractJSON(text)), &content); err != nil {
		return nil, &common.MalformedResponseError{Detail: "response is not valid JSON", Err: err}
	}

	seen := make(map[domain.Platform]bool, len(content))
	for i, post := range content {
		if post.Platform == "" {
			return nil, &common.MalformedResponseError{Detail: fmt.Sprintf("element %d is missing platform", i)}
		}
		if !post.Platform.Valid() {
			return nil, &common.MalformedResponseError{Detail: fmt.Sprintf("element %d has unknown platform %q", i, post.Platform)}
		}
		if post.Content == "" {
			return nil, &common.MalformedResponseError{Detail: fmt.Sprintf("element %d is missing content", i)}
		}
		if seen[post.Platform] {
			return nil, &common.MalformedResponseError{Detail: fmt.Sprintf("platform %s appears more than once", post.Platform)}
		}
		seen[post.Platform] = true
	}
	return content, nil
}

// Refine rewrites one post body per a free-text instruction. The response
// is unconstrained text used verbatim; an empty reply falls back to the
// original content rather than erasing it.
func (g *Generator) Refine(ctx context.Context, content string, platform domain.Platform, instruction, apiKey string) (string, error) {
	if apiKey == "" {
		return "", common.ErrAPIKeyMissing
	}

	prompt := BuildRefinePrompt(content, platform, instruction)
	resp, err := g.client.GenerateContent(ctx, apiKey, g.cfg.TextModel, &genai.Request{
		Contents:       []genai.Content{{Parts: []genai.Part{{Text: prompt}}}},
		SafetySettings: defaultSafetySettings,
	})
	if err != nil {
		return "", normalizeAuthError(err)
	}

	if text := resp.Text(); text != "" {
		return text, nil
	}
	return content, nil
}

// GenerateImage requests one image and returns it as a data URI. The first
// inline binary segment in the response wins.
func (g *Generator) GenerateImage(ctx context.Context, prompt, apiKey string) (string, error) {
	if apiKey == "" {
		return "", common.ErrAPIKeyMissing
	}

	resp, err := g.client.GenerateContent(ctx, apiKey, g.cfg.ImageModel, &genai.Request{
		Contents: []genai.Content{{Parts: []genai.Part{{Text: prompt}}}},
	})
	if err != nil {
		return "", normalizeAuthError(err)
	}

	for _, part := range resp.Parts() {
		if part.InlineData != nil && part.InlineData.Data != "" {
			return fmt.Sprintf("data:%s;base64,%s", part.InlineData.MIMEType, part.InlineData.Data), nil
		}
	}
	return "", common.ErrNoImageInResponse
}

// recordHistory persists a generation attempt when a history repository is
// configured. Best effort: a write failure never affects the call result.
func (g *Generator) recordHistory(info domain.BrandInfo, status string, callErr error, elapsed time.Duration) {
	if g.historyRepo == nil {
		return
	}

	platformsJSON, _ := json.Marshal(info.Platforms)
	rec := &domain.GenerationRecord{
		BrandName:  info.BrandName,
		Topic:      info.Topic,
		Platforms:  string(platformsJSON),
		Model:      g.cfg.TextModel,
		Status:     status,
		DurationMs: elapsed.Milliseconds(),
		CreatedAt:  time.Now(),
	}
	if callErr != nil {
		rec.ErrorDetail = callErr.Error()
	}
	if err := g.historyRepo.Create(rec); err != nil {
		logger.Warn("failed to record generation history: %v", err)
	}
}

// normalizeAuthError reclassifies auth-flavored failures as ErrAPIKeyInvalid
// so callers can uniformly trigger the credential-repair flow.
//
// The substring match on the error description mirrors the upstream API's
// loosely-typed auth failures; it can in principle misclassify an unrelated
// error that happens to mention "403" or "API key".
func normalizeAuthError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 401 || apiErr.StatusCode == 403 {
			return fmt.Errorf("%w: %v", common.ErrAPIKeyInvalid, err)
		}
	}
	msg := err.Error()
	if strings.Contains(msg, "401") || strings.Contains(msg, "403") || strings.Contains(msg, "API key") {
		return fmt.Errorf("%w: %v", common.ErrAPIKeyInvalid, err)
	}
	return err
}

// extractJSON strips a surrounding markdown code fence, if any
func extractJSON(rawText string) string {
	if idx := strings.Index(rawText, "```"); idx >= 0 {
		start := strings.Index(rawText[idx:], "\n")
		if start >= 0 {
			end := strings.Index(rawText[idx+start+1:], "```")
			if end >= 0 {
				return strings.TrimSpace(rawText[idx+start+1 : idx+start+1+end])
			}
		}
	}
	return rawText
}

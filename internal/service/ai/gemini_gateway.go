package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/uberhub/innovation-hub/backend/internal/config"
	"github.com/uberhub/innovation-hub/backend/internal/model/chat"
)

// GeminiGateway talks to the Gemini API through the genai SDK.
type GeminiGateway struct {
	client *genai.Client
	model  string
}

// NewGeminiGateway creates a client for cfg. BaseURL overrides the public endpoint.
func NewGeminiGateway(ctx context.Context, cfg config.AIConfig) (*GeminiGateway, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     strings.TrimSpace(cfg.APIKey),
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiGateway{client: client, model: strings.TrimSpace(cfg.Model)}, nil
}

// Generate implements Gateway.
func (g *GeminiGateway) Generate(ctx context.Context, req Request) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}

	contents := make([]*genai.Content, 0, len(req.Turns))
	for _, turn := range req.Turns {
		role := genai.Role(genai.RoleUser)
		if turn.Role == chat.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, geminiConfig(req.Options))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %w", ErrModelUnavailable, err)
	}
	if result == nil || len(result.Candidates) == 0 {
		return "", fmt.Errorf("%w: gemini returned no candidates", ErrModelUnavailable)
	}

	text := result.Text()
	log.Debug().Str("provider", "gemini").Str("model", g.model).Int("turns", len(req.Turns)).Int("length", len(text)).Msg("model replied")
	return text, nil
}

func geminiConfig(opts GenerationOptions) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if opts.Temperature > 0 {
		cfg.Temperature = genai.Ptr(opts.Temperature)
	}
	if opts.TopP > 0 {
		cfg.TopP = genai.Ptr(opts.TopP)
	}
	if opts.TopK > 0 {
		cfg.TopK = genai.Ptr(float32(opts.TopK))
	}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}
	return cfg
}

package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/uberhub/innovation-hub/backend/internal/config"
	"github.com/uberhub/innovation-hub/backend/internal/model/chat"
)

var (
	// ErrModelUnavailable wraps every transport, timeout or provider failure.
	ErrModelUnavailable = errors.New("language model unavailable")
	// ErrMalformedResponse marks model output that failed validation.
	ErrMalformedResponse = errors.New("malformed model response")
)

// GenerationOptions caps sampling for a single call. Zero values leave the
// provider default in place.
type GenerationOptions struct {
	Temperature float32
	TopP        float32
	TopK        int
	MaxTokens   int
}

// Request is a dialogue to replay; the model answers the last user turn.
type Request struct {
	Turns   []chat.Turn
	Options GenerationOptions
}

// SinglePrompt wraps a standalone prompt as a one-turn dialogue.
func SinglePrompt(prompt string, opts GenerationOptions) Request {
	return Request{Turns: []chat.Turn{chat.UserTurn(prompt)}, Options: opts}
}

// Gateway sends a dialogue to the external model and returns its raw text.
// It never parses or validates the answer.
type Gateway interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// DefaultOptions derives chat generation options from configuration.
func DefaultOptions(cfg config.AIConfig) GenerationOptions {
	return GenerationOptions{
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		TopK:        cfg.TopK,
		MaxTokens:   cfg.MaxTokens,
	}
}

// NewGateway builds the gateway for the configured provider.
func NewGateway(ctx context.Context, cfg config.AIConfig) (Gateway, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("AI credentials or model missing for provider %q", cfg.Provider)
	}

	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiGateway(ctx, cfg)
	case config.ProviderArk, config.ProviderOpenAI:
		chatModel, err := newEinoChatModel(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}
		return NewEinoGateway(ctx, string(cfg.Provider), chatModel)
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
}

func validateRequest(req Request) error {
	if len(req.Turns) == 0 {
		return errors.New("dialogue has no turns")
	}
	if last := req.Turns[len(req.Turns)-1]; last.Role != chat.RoleUser {
		return fmt.Errorf("dialogue must end with a user turn, got %q", last.Role)
	}
	return nil
}

// Unavailable classifies a gateway error as ErrModelUnavailable unless it
// already carries that kind.
func Unavailable(err error) error {
	if err == nil || errors.Is(err, ErrModelUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrModelUnavailable, err)
}

package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"github.com/uberhub/innovation-hub/backend/internal/config"
	"github.com/uberhub/innovation-hub/backend/internal/model/chat"
)

// EinoGateway runs dialogues through an eino chain: template -> chat model.
type EinoGateway struct {
	name  string
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewEinoGateway compiles the chain around chatModel.
func NewEinoGateway(ctx context.Context, name string, chatModel model.BaseChatModel) (*EinoGateway, error) {
	// The dialogue goes through a placeholder so prompt bodies containing
	// JSON braces are never treated as template variables.
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("dialogue", false),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &EinoGateway{name: name, chain: runnable}, nil
}

// Generate implements Gateway.
func (g *EinoGateway) Generate(ctx context.Context, req Request) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}

	input := map[string]any{"dialogue": toSchemaMessages(req.Turns)}
	response, err := g.chain.Invoke(ctx, input, compose.WithChatModelOption(einoOptions(req.Options)...))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrModelUnavailable, g.name, err)
	}
	if response == nil {
		return "", fmt.Errorf("%w: %s returned no message", ErrModelUnavailable, g.name)
	}

	log.Debug().Str("provider", g.name).Int("turns", len(req.Turns)).Int("length", len(response.Content)).Msg("model replied")
	return response.Content, nil
}

func toSchemaMessages(turns []chat.Turn) []*schema.Message {
	messages := make([]*schema.Message, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case chat.RoleUser:
			messages = append(messages, schema.UserMessage(turn.Text))
		case chat.RoleModel:
			messages = append(messages, schema.AssistantMessage(turn.Text, nil))
		}
	}
	return messages
}

func einoOptions(opts GenerationOptions) []model.Option {
	var out []model.Option
	if opts.Temperature > 0 {
		out = append(out, model.WithTemperature(opts.Temperature))
	}
	if opts.TopP > 0 {
		out = append(out, model.WithTopP(opts.TopP))
	}
	if opts.MaxTokens > 0 {
		out = append(out, model.WithMaxTokens(opts.MaxTokens))
	}
	return out
}

// newEinoChatModel 使用配置创建一个模型实例。
func newEinoChatModel(ctx context.Context, cfg config.AIConfig) (model.BaseChatModel, error) {
	switch cfg.Provider {
	case config.ProviderArk:
		arkCfg := &ark.ChatModelConfig{
			BaseURL:   strings.TrimSpace(cfg.BaseURL),
			Region:    cfg.Region,
			APIKey:    cfg.APIKey,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Model:     cfg.Model,
		}
		if arkCfg.BaseURL == "" {
			arkCfg.BaseURL = "https://ark.cn-beijing.volces.com/api/v3"
		}
		return ark.NewChatModel(ctx, arkCfg)
	case config.ProviderOpenAI:
		baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL: baseURL,
			APIKey:  strings.TrimSpace(cfg.APIKey),
			Model:   strings.TrimSpace(cfg.Model),
			Timeout: cfg.Timeout,
		})
	default:
		return nil, fmt.Errorf("provider %q is not served by eino", cfg.Provider)
	}
}

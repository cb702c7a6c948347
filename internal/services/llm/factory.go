package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/common"
	"github.com/ternarybob/ordino/internal/interfaces"
)

// NewService creates the LLM service for the configured provider. When the
// chat provider is Claude, embeddings are still routed to Gemini if a Gemini
// key is present. With no keys at all a disabled service is returned so the
// engine can run on its rule-based fallbacks.
func NewService(config *common.Config, logger arbor.ILogger) (interfaces.LLMService, error) {
	provider := resolveProvider(config)

	switch provider {
	case "claude":
		claude, err := NewClaudeService(config, logger)
		if err != nil {
			return nil, err
		}
		if config.LLM.GeminiAPIKey != "" {
			gemini, err := NewGeminiService(config, logger)
			if err != nil {
				claude.Close()
				return nil, err
			}
			logger.Info().Msg("Using Claude for chat with Gemini embeddings")
			return &routedService{chat: claude, embed: gemini}, nil
		}
		logger.Info().Msg("Using Claude provider (embeddings unavailable)")
		return claude, nil

	case "gemini":
		gemini, err := NewGeminiService(config, logger)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("Using Gemini provider")
		return gemini, nil

	default:
		return newDisabledService(logger), nil
	}
}

// resolveProvider picks the provider from explicit config, falling back to
// chat model name prefix, then to whichever API key is present.
func resolveProvider(config *common.Config) string {
	if config.LLM.DefaultProvider != "" {
		return config.LLM.DefaultProvider
	}

	switch {
	case strings.HasPrefix(config.LLM.ChatModel, "claude") && config.LLM.ClaudeAPIKey != "":
		return "claude"
	case strings.HasPrefix(config.LLM.ChatModel, "gemini") && config.LLM.GeminiAPIKey != "":
		return "gemini"
	case config.LLM.GeminiAPIKey != "":
		return "gemini"
	case config.LLM.ClaudeAPIKey != "":
		return "claude"
	}
	return ""
}

// routedService splits chat and embedding traffic across two providers.
type routedService struct {
	chat  interfaces.LLMService
	embed interfaces.LLMService
}

func (s *routedService) Embed(ctx context.Context, text string) ([]float32, error) {
	return s.embed.Embed(ctx, text)
}

func (s *routedService) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	return s.chat.Chat(ctx, messages)
}

func (s *routedService) HealthCheck(ctx context.Context) error {
	if err := s.chat.HealthCheck(ctx); err != nil {
		return fmt.Errorf("chat provider: %w", err)
	}
	if err := s.embed.HealthCheck(ctx); err != nil {
		return fmt.Errorf("embedding provider: %w", err)
	}
	return nil
}

func (s *routedService) GetMode() interfaces.LLMMode {
	return interfaces.LLMModeCloud
}

func (s *routedService) Close() error {
	err := s.chat.Close()
	if embedErr := s.embed.Close(); err == nil {
		err = embedErr
	}
	return err
}

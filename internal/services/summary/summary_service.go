package summary

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/common"
	"github.com/ternarybob/ordino/internal/interfaces"
)

// Service produces the short article summary that every classifier scores
// against. A chat model writes a 3-5 sentence digest; without a model the
// summary degrades to a truncated lead.
type Service struct {
	llmService interfaces.LLMService
	config     *common.SummaryConfig
	logger     arbor.ILogger
}

// NewService creates a new summarizer service
func NewService(llmService interfaces.LLMService, config *common.Config, logger arbor.ILogger) *Service {
	return &Service{
		llmService: llmService,
		config:     &config.Summary,
		logger:     logger,
	}
}

// Summarize returns a short digest of the article. The model prompt is
// capped at MaxInputChars; any model failure falls back to Fallback.
func (s *Service) Summarize(ctx context.Context, title, text string) string {
	if s.llmService == nil || s.llmService.GetMode() == interfaces.LLMModeDisabled {
		return s.Fallback(text)
	}

	input := text
	if utf8.RuneCountInString(input) > s.config.MaxInputChars {
		input = string([]rune(input)[:s.config.MaxInputChars])
	}

	messages := []interfaces.Message{
		{
			Role:    "system",
			Content: "Ты помощник, который пишет краткие резюме технических статей. Отвечай только текстом резюме, без вступлений и пояснений.",
		},
		{
			Role: "user",
			Content: "Сделай краткое резюме статьи в 3-5 предложениях. Сохрани ключевые термины и тематику.\n\n" +
				"Заголовок: " + title + "\n\nТекст статьи:\n" + input,
		},
	}

	response, err := s.llmService.Chat(ctx, messages)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Model summarization failed, using truncated lead")
		return s.Fallback(text)
	}

	summary := strings.TrimSpace(response)
	if summary == "" {
		return s.Fallback(text)
	}

	s.logger.Debug().
		Int("input_length", len(text)).
		Int("summary_length", len(summary)).
		Msg("Article summarized")

	return summary
}

// Fallback truncates the article lead when no model is available.
func (s *Service) Fallback(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= s.config.FallbackChars {
		return text
	}
	return string(runes[:s.config.FallbackChars]) + "..."
}

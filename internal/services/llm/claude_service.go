package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/ordino/internal/common"
	"github.com/ternarybob/ordino/internal/interfaces"
)

// ClaudeService implements the LLMService interface using the Anthropic SDK.
// Claude provides chat completions only; embedding requests are rejected and
// the factory routes them to Gemini when a key is available.
type ClaudeService struct {
	config  *common.LLMConfig
	logger  arbor.ILogger
	client  anthropic.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// NewClaudeService creates a new Claude LLM service instance.
func NewClaudeService(config *common.Config, logger arbor.ILogger) (*ClaudeService, error) {
	if config.LLM.ClaudeAPIKey == "" {
		return nil, fmt.Errorf("Claude API key is required (set ORDINO_LLM_CLAUDE_API_KEY or llm.claude_api_key in config)")
	}

	client := anthropic.NewClient(option.WithAPIKey(config.LLM.ClaudeAPIKey))

	rpm := config.LLM.RequestsPerMin
	if rpm <= 0 {
		rpm = 60
	}

	service := &ClaudeService{
		config:  &config.LLM,
		logger:  logger,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		timeout: config.LLMTimeout(),
	}

	logger.Debug().
		Str("chat_model", config.LLM.ChatModel).
		Dur("timeout", service.timeout).
		Msg("Claude LLM service initialized")

	return service, nil
}

// Embed is not supported by the Anthropic API.
func (s *ClaudeService) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, fmt.Errorf("embeddings are not supported by the Claude provider")
}

// Chat generates a completion response based on the conversation history.
func (s *ClaudeService) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("messages cannot be empty for chat completion")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait failed: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	anthropicMessages := make([]anthropic.MessageParam, 0, len(messages))
	var systemText string
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			if systemText == "" {
				systemText = msg.Content
			}
		case "assistant":
			anthropicMessages = append(anthropicMessages,
				anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			anthropicMessages = append(anthropicMessages,
				anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	if len(anthropicMessages) == 0 {
		return "", fmt.Errorf("at least one message must have role 'user'")
	}

	maxTokens := int64(s.config.MaxOutputTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(s.config.ChatModel),
		MaxTokens:   maxTokens,
		Messages:    anthropicMessages,
		Temperature: anthropic.Float(float64(s.config.Temperature)),
	}
	if systemText != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemText}}
	}

	startTime := time.Now()
	response, err := s.client.Messages.New(timeoutCtx, params)
	if err != nil {
		s.logger.Error().Err(err).Int("message_count", len(messages)).Msg("Chat completion failed")
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	var text string
	for _, block := range response.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("no response generated from Claude API")
	}

	s.logger.Debug().
		Int("message_count", len(messages)).
		Int("response_length", len(text)).
		Dur("duration", time.Since(startTime)).
		Msg("Chat completion completed")

	return text, nil
}

// HealthCheck verifies the Claude service can handle requests.
func (s *ClaudeService) HealthCheck(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.Chat(probeCtx, []interfaces.Message{{Role: "user", Content: "ping"}})
	if err != nil {
		return fmt.Errorf("chat model health check failed: %w", err)
	}
	return nil
}

// GetMode returns the current operational mode of the LLM service.
func (s *ClaudeService) GetMode() interfaces.LLMMode {
	return interfaces.LLMModeCloud
}

// Close releases resources and performs cleanup operations.
func (s *ClaudeService) Close() error {
	return nil
}

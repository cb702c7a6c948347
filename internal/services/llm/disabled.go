package llm

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/interfaces"
)

// disabledService is returned when no provider key is configured. Every call
// fails fast so callers fall back to their rule-based paths.
type disabledService struct {
	logger arbor.ILogger
}

func newDisabledService(logger arbor.ILogger) *disabledService {
	logger.Warn().Msg("No LLM provider configured; model-backed classification disabled")
	return &disabledService{logger: logger}
}

func (s *disabledService) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, fmt.Errorf("LLM service is disabled: no API key configured")
}

func (s *disabledService) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	return "", fmt.Errorf("LLM service is disabled: no API key configured")
}

func (s *disabledService) HealthCheck(ctx context.Context) error {
	return fmt.Errorf("LLM service is disabled: no API key configured")
}

func (s *disabledService) GetMode() interfaces.LLMMode {
	return interfaces.LLMModeDisabled
}

func (s *disabledService) Close() error {
	return nil
}

package llm

import (
	"context"
	"testing"

	"github.com/ternarybob/ordino/internal/common"
	"github.com/ternarybob/ordino/internal/interfaces"
)

func factoryConfig(provider, chatModel, geminiKey, claudeKey string) *common.Config {
	config := common.DefaultConfig()
	config.LLM.DefaultProvider = provider
	config.LLM.ChatModel = chatModel
	config.LLM.GeminiAPIKey = geminiKey
	config.LLM.ClaudeAPIKey = claudeKey
	return config
}

func TestResolveProvider(t *testing.T) {
	tests := []struct {
		name   string
		config *common.Config
		want   string
	}{
		{"explicit provider wins", factoryConfig("claude", "gemini-2.0-flash", "gk", ""), "claude"},
		{"claude model with claude key", factoryConfig("", "claude-sonnet-4-20250514", "", "ck"), "claude"},
		{"gemini model with gemini key", factoryConfig("", "gemini-2.0-flash", "gk", ""), "gemini"},
		{"gemini key alone", factoryConfig("", "", "gk", ""), "gemini"},
		{"claude key alone", factoryConfig("", "", "", "ck"), "claude"},
		{"no keys", factoryConfig("", "", "", ""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveProvider(tt.config); got != tt.want {
				t.Errorf("resolveProvider() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewService_NoKeysReturnsDisabled(t *testing.T) {
	service, err := NewService(factoryConfig("", "", "", ""), common.GetLogger())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	defer service.Close()

	if service.GetMode() != interfaces.LLMModeDisabled {
		t.Errorf("mode = %v, want disabled", service.GetMode())
	}
	if _, err := service.Embed(context.Background(), "текст"); err == nil {
		t.Error("disabled service must reject Embed")
	}
	if _, err := service.Chat(context.Background(), nil); err == nil {
		t.Error("disabled service must reject Chat")
	}
}

package interfaces

import (
	"context"
)

// LLMMode represents the operational mode of the LLM service
type LLMMode string

const (
	// LLMModeCloud indicates the service uses cloud-based LLM APIs
	LLMModeCloud LLMMode = "cloud"

	// LLMModeDisabled indicates no LLM provider is configured; callers must
	// use their deterministic fallbacks
	LLMModeDisabled LLMMode = "disabled"
)

// Message represents a single message in a chat conversation
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string

	// Content contains the text content of the message
	Content string
}

// LLMService defines the interface for language model operations: embedding
// generation and chat completions. Implementations wrap cloud providers
// (Gemini, Claude); a nil or disabled service is a supported state and every
// consumer carries a local fallback.
type LLMService interface {
	// Embed generates an embedding vector for the given text. The vector
	// dimension is fixed per configuration and identical across calls, which
	// the similarity classifier relies on when comparing documents against
	// cached category vectors.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Chat generates a completion response based on the conversation history.
	// The messages slice should contain the full conversation context
	// including system prompts and user messages.
	Chat(ctx context.Context, messages []Message) (string, error)

	// HealthCheck verifies the LLM service is operational.
	HealthCheck(ctx context.Context) error

	// GetMode returns the current operational mode of the LLM service.
	GetMode() LLMMode

	// Close releases resources and performs cleanup operations.
	Close() error
}

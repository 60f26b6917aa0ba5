package interfaces

import (
	"context"
)

// LLMService defines the interface for language model completions.
// Implementations use cloud APIs (Gemini, Claude) with deterministic
// zero-temperature sampling so analysis tone is reproducible.
type LLMService interface {
	// Complete sends a prompt to the model and returns the generated text.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - prompt: The fully rendered prompt string
	//
	// Returns:
	//   - string: Generated response text
	//   - error: Error if the completion fails or returns empty output
	Complete(ctx context.Context, prompt string) (string, error)

	// HealthCheck verifies the service is operational and can handle requests
	HealthCheck(ctx context.Context) error

	// Close releases resources and performs cleanup operations
	Close() error
}

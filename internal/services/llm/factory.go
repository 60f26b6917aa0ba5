package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/common"
	"github.com/ternarybob/scrutor/internal/interfaces"
)

// NewLLMService creates the appropriate LLM service implementation based on
// configuration. Construction fails fast when the provider cannot be
// initialized; nothing downstream works without completions.
func NewLLMService(cfg *common.Config, logger arbor.ILogger) (interfaces.LLMService, error) {
	logger.Info().Str("mode", cfg.LLM.Mode).Msg("Initializing LLM service")

	switch cfg.LLM.Mode {
	case "gemini":
		return NewGeminiService(&cfg.LLM, logger)

	case "claude":
		return NewClaudeService(&cfg.LLM, logger)

	default:
		return nil, fmt.Errorf("invalid LLM mode '%s': must be 'gemini' or 'claude'", cfg.LLM.Mode)
	}
}

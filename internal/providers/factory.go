package providers

import (
	"fmt"
	"strings"
)

// New selects a provider implementation from the configured model name.
func New(cfg Config) (Provider, error) {
	model := strings.ToLower(cfg.Model)

	switch {
	case strings.Contains(model, "claude"),
		strings.Contains(model, "sonnet"),
		strings.Contains(model, "opus"),
		strings.Contains(model, "haiku"):
		return NewAnthropic(cfg)
	case strings.Contains(model, "gpt"):
		return NewOpenAI(cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModel, cfg.Model)
	}
}

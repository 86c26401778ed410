package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvProviderModel     = "TANAFUS_PROVIDER_MODEL"
	EnvProviderAPIKey    = "TANAFUS_PROVIDER_API_KEY"
	EnvProviderMaxTokens = "TANAFUS_PROVIDER_MAX_TOKENS"
)

// ProviderConfig holds generative model settings.
type ProviderConfig struct {
	Model     string `toml:"model"`
	APIKey    string `toml:"api_key"`
	MaxTokens int    `toml:"max_tokens"`
}

// Merge overwrites non-zero fields from overlay.
func (c *ProviderConfig) Merge(overlay *ProviderConfig) {
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.MaxTokens != 0 {
		c.MaxTokens = overlay.MaxTokens
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ProviderConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *ProviderConfig) loadDefaults() {
	if c.Model == "" {
		c.Model = "claude-sonnet-4-5"
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 4000
	}
}

func (c *ProviderConfig) loadEnv() {
	if v := os.Getenv(EnvProviderModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvProviderAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvProviderMaxTokens); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxTokens = n
		}
	}
}

func (c *ProviderConfig) validate() error {
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative, got %d", c.MaxTokens)
	}
	return nil
}

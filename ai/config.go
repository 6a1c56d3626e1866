// Copyright 2025 MataConnect
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for the enrichment service provider.
type Config struct {
	// Host is the base URL for the OpenAI-compatible chat API.
	// Example: "https://api.openai.com/v1", "http://localhost:11434/v1"
	Host string

	// Model is the chat model identifier used for enrichment.
	// Example: "gpt-4o-mini", "qwen2.5:3b"
	Model string

	// APIKey authenticates against the service. Local OpenAI-compatible
	// servers accept any value; when empty, "none" is sent.
	APIKey string

	// FetchTimeout bounds the HTTP fetch of the community page.
	// Default: 30s
	FetchTimeout time.Duration

	// MaxPageChars caps how much visible page text is embedded in the
	// enrichment prompt. Default: 16000
	MaxPageChars int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the chat service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the chat model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithFetchTimeout sets the page fetch timeout.
func WithFetchTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.FetchTimeout = d
	}
}

// WithMaxPageChars sets the page text budget for the prompt.
func WithMaxPageChars(n int) ConfigOption {
	return func(c *Config) {
		c.MaxPageChars = n
	}
}

// DefaultConfig returns a Config with sensible defaults for the OpenAI API.
func DefaultConfig() *Config {
	return &Config{
		Host:         "https://api.openai.com/v1",
		Model:        "gpt-4o-mini",
		FetchTimeout: 30 * time.Second,
		MaxPageChars: 16000,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:11434/v1"),
//	    WithModel("qwen2.5:3b"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It adds the /v1 suffix to the host if missing, which is required by most
// OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.FetchTimeout <= 0 {
		return errors.New("ai config: FetchTimeout must be positive")
	}
	if c.MaxPageChars <= 0 {
		return errors.New("ai config: MaxPageChars must be positive")
	}
	return nil
}

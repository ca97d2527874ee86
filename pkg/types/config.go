// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for outbound API calls.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the deadline to the
	// caller's context.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Provider names the hosted text-generation API.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderClaude Provider = "claude"
)

// AIConfig holds settings for the text-generation collaborator.
type AIConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the backend: gemini or claude.
	Provider Provider `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "gemini-2.5-flash-lite").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// ServerConfig holds settings for the HTTP surface.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// AllowOrigins lists browser origins allowed by CORS.
	AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
}

// AppConfig groups everything the CLI reads from config files and flags.
type AppConfig struct {
	AI     AIConfig     `json:"ai" yaml:"ai"`
	Server ServerConfig `json:"server" yaml:"server"`

	// Workspace is the pack file the CLI keeps the session in.
	Workspace string `json:"workspace" yaml:"workspace"`

	// LogMode is "dev" or "prod".
	LogMode string `json:"log_mode" yaml:"log_mode"`
}

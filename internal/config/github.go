package config

import (
	"fmt"
	"strings"
	"time"
)

// GitHubConfig holds code-hosting API client configuration.
// The token and webhook secret are passed per-call and never persisted.
type GitHubConfig struct {
	// APIBaseURL is the REST API base URL (overridable for tests).
	APIBaseURL string
	// Token is the bearer token used for all API requests.
	Token string
	// WebhookSecret is the shared secret for webhook HMAC verification.
	WebhookSecret string
	// RequestTimeout bounds a single upstream API call.
	RequestTimeout time.Duration
}

// LoadGitHubConfigFromEnv loads GitHub configuration from environment variables.
func LoadGitHubConfigFromEnv() GitHubConfig {
	return GitHubConfig{
		APIBaseURL:     GetEnv("GITHUB_API_URL", "https://api.github.com"),
		Token:          GetEnv("GITHUB_TOKEN", ""),
		WebhookSecret:  GetEnv("GITHUB_WEBHOOK_SECRET", ""),
		RequestTimeout: GetEnvDuration("GITHUB_REQUEST_TIMEOUT", 15*time.Second),
	}
}

// Validate validates GitHub configuration.
func (c GitHubConfig) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("GITHUB_API_URL must not be empty")
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("GITHUB_API_URL must be an http(s) URL: %s", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("RequestTimeout must be greater than 0")
	}
	return nil
}

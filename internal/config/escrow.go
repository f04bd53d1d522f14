package config

import (
	"fmt"
	"strings"
	"time"
)

// EscrowConfig holds payment network gateway configuration.
type EscrowConfig struct {
	// BaseURL is the escrow service endpoint.
	BaseURL string
	// FunderSecret authorizes fund and release calls. Never persisted.
	FunderSecret string
	// RequestTimeout bounds a single gateway call.
	RequestTimeout time.Duration
}

// LoadEscrowConfigFromEnv loads escrow configuration from environment variables.
func LoadEscrowConfigFromEnv() EscrowConfig {
	return EscrowConfig{
		BaseURL:        GetEnv("ESCROW_SERVICE_URL", "https://launchtube.stellar.example"),
		FunderSecret:   GetEnv("ESCROW_FUNDER_SECRET", ""),
		RequestTimeout: GetEnvDuration("ESCROW_REQUEST_TIMEOUT", 30*time.Second),
	}
}

// Validate validates escrow configuration.
func (c EscrowConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("ESCROW_SERVICE_URL must not be empty")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("ESCROW_SERVICE_URL must be an http(s) URL: %s", c.BaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("RequestTimeout must be greater than 0")
	}
	return nil
}

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	// TokenEndpointPath is appended to the API base URL to reach the token endpoint.
	TokenEndpointPath = "/api/oauth/token"
	DefaultAPIBaseURL = "http://localhost:8080"
)

type CallbackConfig interface {
	GetTokenExchangeSettings() (TokenExchangeSettings, error)
}

// TokenExchangeSettings are the values needed to redeem an authorization code.
// An empty variable is treated the same as an unset one.
type TokenExchangeSettings struct {
	APIBaseURL   string `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

// TokenEndpoint returns the absolute URL of the token endpoint.
func (s TokenExchangeSettings) TokenEndpoint() string {
	return strings.TrimRight(s.APIBaseURL, "/") + TokenEndpointPath
}

// Callback reads the token exchange settings from the environment.
type Callback struct{}

var _ CallbackConfig = Callback{}

// GetTokenExchangeSettings decodes the settings on every call so that changes
// to the environment are picked up by the next request.
func (Callback) GetTokenExchangeSettings() (TokenExchangeSettings, error) {
	var settings TokenExchangeSettings
	if err := env.Parse(&settings); err != nil {
		return TokenExchangeSettings{}, fmt.Errorf("parse token exchange settings: %w", err)
	}
	if settings.APIBaseURL == "" {
		settings.APIBaseURL = DefaultAPIBaseURL
	}
	return settings, nil
}

// StaticCallback serves a fixed set of settings, for embedding hosts and tests.
type StaticCallback TokenExchangeSettings

var _ CallbackConfig = StaticCallback{}

func (s StaticCallback) GetTokenExchangeSettings() (TokenExchangeSettings, error) {
	return TokenExchangeSettings(s), nil
}

// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// OAuthProvider configures one external identity provider.
type OAuthProvider struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	AuthURL      string   `json:"auth_url"`
	TokenURL     string   `json:"token_url"`
	CallbackURL  string   `json:"callback_url"`
	Scopes       []string `json:"scopes"`
}

// Config holds runtime settings for the PromptBook server.
//
// An empty DatabaseDSN selects the in-memory backend. SecretKey signs every
// JWT the server issues; the default is for development only.
type Config struct {
	EndpointAddrGRPC             string
	DatabaseDSN                  string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	TokenCleanupInterval         time.Duration
	LogLevel                     string
	LogFormat                    string
	OAuthProviders               map[string]OAuthProvider
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 7 * 24 * time.Hour
	c.TokenCleanupInterval = 10 * time.Minute
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.OAuthProviders = map[string]OAuthProvider{}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

package config

import "time"

// Config holds runtime settings for the PromptBook CLI.
//
// Units: OnlineCheckInterval and RequestTimeout are time.Duration values;
// RequestTimeout 0 means calls wait as long as the server takes.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	SessionDBPath       string
	LogLevel            string
	LogFormat           string
	RequestTimeout      time.Duration
	OAuthRedirectURL    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.SessionDBPath = "promptbook.db"
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.RequestTimeout = 0
	c.OAuthRedirectURL = "http://localhost:3000"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

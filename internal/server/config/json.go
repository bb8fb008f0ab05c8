package config

import (
	"cmp"
	"encoding/json"
	"maps"
	"os"

	"github.com/dmitrijs2005/promptbook/internal/flagx"
	"github.com/dmitrijs2005/promptbook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations go
// through timex.Duration so they can be written as "15m".
type JsonConfig struct {
	EndpointAddrGRPC             string                   `json:"endpoint_addr_grpc"`
	DatabaseDSN                  string                   `json:"database_dsn"`
	SecretKey                    string                   `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration           `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration           `json:"refresh_token_validity_duration"`
	TokenCleanupInterval         timex.Duration           `json:"token_cleanup_interval"`
	LogLevel                     string                   `json:"log_level"`
	LogFormat                    string                   `json:"log_format"`
	OAuthProviders               map[string]OAuthProvider `json:"oauth_providers"`
}

// parseJson overlays Config with the non-empty values of the JSON file named
// by flagx.JsonConfigFlags. Providers are merged by name. It panics on read
// or decode errors.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrGRPC = cmp.Or(c.EndpointAddrGRPC, config.EndpointAddrGRPC)
	config.DatabaseDSN = cmp.Or(c.DatabaseDSN, config.DatabaseDSN)
	config.SecretKey = cmp.Or(c.SecretKey, config.SecretKey)
	config.AccessTokenValidityDuration = cmp.Or(c.AccessTokenValidityDuration.Duration, config.AccessTokenValidityDuration)
	config.RefreshTokenValidityDuration = cmp.Or(c.RefreshTokenValidityDuration.Duration, config.RefreshTokenValidityDuration)
	config.TokenCleanupInterval = cmp.Or(c.TokenCleanupInterval.Duration, config.TokenCleanupInterval)
	config.LogLevel = cmp.Or(c.LogLevel, config.LogLevel)
	config.LogFormat = cmp.Or(c.LogFormat, config.LogFormat)

	if len(c.OAuthProviders) > 0 {
		if config.OAuthProviders == nil {
			config.OAuthProviders = make(map[string]OAuthProvider, len(c.OAuthProviders))
		}
		maps.Copy(config.OAuthProviders, c.OAuthProviders)
	}
}

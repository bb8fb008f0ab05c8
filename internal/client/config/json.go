package config

import (
	"cmp"
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/promptbook/internal/flagx"
	"github.com/dmitrijs2005/promptbook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations go
// through timex.Duration so they can be written as "3s".
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	SessionDBPath       string         `json:"session_db_path"`
	LogLevel            string         `json:"log_level"`
	LogFormat           string         `json:"log_format"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OAuthRedirectURL    string         `json:"oauth_redirect_url"`
}

// parseJson overlays Config with the non-empty values of the JSON file named
// by flagx.JsonConfigFlags. It panics on read or decode errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerEndpointAddr = cmp.Or(jc.ServerEndpointAddr, cfg.ServerEndpointAddr)
	cfg.OnlineCheckInterval = cmp.Or(jc.OnlineCheckInterval.Duration, cfg.OnlineCheckInterval)
	cfg.SessionDBPath = cmp.Or(jc.SessionDBPath, cfg.SessionDBPath)
	cfg.LogLevel = cmp.Or(jc.LogLevel, cfg.LogLevel)
	cfg.LogFormat = cmp.Or(jc.LogFormat, cfg.LogFormat)
	cfg.RequestTimeout = cmp.Or(jc.RequestTimeout.Duration, cfg.RequestTimeout)
	cfg.OAuthRedirectURL = cmp.Or(jc.OAuthRedirectURL, cfg.OAuthRedirectURL)
}

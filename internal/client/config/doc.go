// Package config loads runtime configuration for the PromptBook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected with -c / -config or the
//     PROMPTBOOK_CONFIG environment variable.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-i int      online status check interval (seconds)
//	-f string   path of the local session database
//	-l string   log level (debug, info, warn, error)
//	-g string   log format (text, json, zap)
//	-t int      per-command request timeout (seconds, 0 = none)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "3s" or integer
// nanoseconds. Absent keys keep their default:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "session_db_path": "promptbook.db",
//	  "log_level": "warn",
//	  "log_format": "text",
//	  "request_timeout": "10s",
//	  "oauth_redirect_url": "http://localhost:3000"
//	}
package config

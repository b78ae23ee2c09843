// Package config loads runtime configuration for the directory admin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the directory API
//	-k string   API key (x-api-key header)
//	-t int      request timeout in seconds
//	-s string   token store: memory | sqlite | keyring
//	-d string   sqlite database path
//	-l string   log level: debug | info | warn | error
//
// # JSON schema
//
// Durations accept strings like "10s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://reqres.in/api",
//	  "api_key": "reqres-free-v1",
//	  "request_timeout": "10s",
//	  "token_store": "sqlite",
//	  "database_path": "diradmin.db",
//	  "history_file": ".diradmin_history",
//	  "log_level": "info"
//	}
//
// Environment variables are not read.
package config

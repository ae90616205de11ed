// Package config loads runtime configuration for the Lumen CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with --config.
//  3. Command-line flags owned by the cobra root command, which override
//     earlier values.
//
// # JSON schema
//
// The timeout uses timex.Duration, so it may be a string like "5s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "cache_path": "/home/ana/.lumen/cache.db",
//	  "request_timeout": "5s"
//	}
package config

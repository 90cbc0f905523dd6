// Package config loads runtime configuration for the PassKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string           storage backend: file, sqlite or bolt
//	-d string           data directory
//	-u string           users document name
//	-r string           records document name
//	-db string          database file for the sqlite and bolt backends
//	-m int              failed attempts before lockout
//	-l int              lockout duration (seconds)
//	-p string           account deletion policy: cascade, orphan or reject
//	-log-level string   debug, info, warn or error
//	-log-format string  text or json
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "300s" or
// integer nanoseconds:
//
//	{
//	  "backend": "sqlite",
//	  "data_dir": "/var/lib/passkeeper",
//	  "max_failed_attempts": 3,
//	  "lockout_duration": "5m",
//	  "delete_policy": "cascade"
//	}
//
// Keys that are absent keep the value from the previous stage. Environment
// variables are not read.
package config

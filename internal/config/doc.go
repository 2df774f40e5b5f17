// Package config loads runtime configuration for the logbook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-b string   store backend: sqlite (default) or postgres
//	-d string   database DSN; a file path for sqlite
//	-l string   locale tag, e.g. "en"
//
// # JSON schema
//
//	{
//	  "database_driver": "sqlite",
//	  "database_dsn": "logbook.db",
//	  "locale": "en",
//	  "export_chunk_size": 100
//	}
package config

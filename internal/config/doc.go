// Package config handles configuration loading for feedsync.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	server:
//	  base_url: "${FEEDSYNC_SERVER}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  base_url: "http://localhost:8080"  # Remote collaborator
//	  timeout: "15s"                     # Per-request bound
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Usage
//
//	cfg, err := config.Load("/etc/feedsync/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config

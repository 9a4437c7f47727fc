// Package config provides configuration management for albumart-downloader.
//
// This package handles:
//   - Default configuration values
//   - Loading settings from YAML, JSON or TOML files
//   - Environment variable overrides
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Reads links.txt, saves covers to album_arts/
//
// # Loading
//
//	settings, err := config.Load("")              // ~/.albumart.yaml if present
//	settings, err := config.Load("albumart.yaml") // explicit file
//
// A missing file falls back to the defaults. Any setting can be overridden
// from the environment:
//
//	ALBUMART_DOWNLOADS_PATH=/srv/covers albumart-dl
//
// # Configuration Options
//
//   - downloads_path: directory receiving the tagged covers
//   - links_file: file listing the album page links
//   - link_delimiter: separator between links (default ", ")
//   - user_agent: User-Agent header for all requests
//   - request_timeout: per-request timeout in seconds (0 disables)
package config

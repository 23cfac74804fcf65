// Package config manages Onyx Desktop's persisted runtime configuration.
// This file contains the configuration value type, its defaults, and
// server URL normalization.
package config

import (
	"strings"

	"github.com/onyx-dot-app/onyx-desktop/common"
)

// Config represents the application configuration.
// It is a plain value; concurrent access goes through Store.
type Config struct {
	// ServerURL is the Onyx deployment loaded into window surfaces.
	// Always an absolute http(s) URL without a trailing slash.
	ServerURL string `json:"server_url"`
	// WindowTitle is the title applied to created window surfaces.
	WindowTitle string `json:"window_title,omitempty"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		ServerURL:   common.DefaultServerURL,
		WindowTitle: common.AppName,
	}
}

// NormalizeServerURL validates a raw server URL and returns it with
// every trailing slash removed. Returns ErrInvalidServerURL when the
// input does not start with http:// or https://.
func NormalizeServerURL(raw string) (string, error) {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "", common.ErrInvalidServerURL
	}
	return strings.TrimRight(raw, "/"), nil
}

// sanitize repairs field values a hand-edited file may have left
// invalid, falling back per field rather than discarding the whole
// configuration. Idempotent.
func (c *Config) sanitize() {
	normalized, err := NormalizeServerURL(c.ServerURL)
	if err != nil {
		normalized = common.DefaultServerURL
	}
	c.ServerURL = normalized
	if c.WindowTitle == "" {
		c.WindowTitle = common.AppName
	}
}

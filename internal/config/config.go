// Package config defines the service configuration and how it is loaded.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// TemplateVersion selects the score sheet variant: legacy or current.
	TemplateVersion string `koanf:"template_version" validate:"oneof=legacy current"`

	// Timezone is the IANA zone dates and clock times are printed in.
	Timezone string `koanf:"timezone" validate:"required"`

	// MaxRequestBytes caps request bodies.
	MaxRequestBytes int64 `koanf:"max_request_bytes" validate:"min=1024"`

	// MaxMatchesPerDivision caps workbook, standings and archive requests.
	MaxMatchesPerDivision int `koanf:"max_matches_per_division" validate:"min=1"`

	// RenderTimeoutMS bounds a single report request.
	RenderTimeoutMS int `koanf:"render_timeout_ms" validate:"min=1"`

	// ArchiveWorkers sizes the pool rendering score sheet archives.
	ArchiveWorkers int `koanf:"archive_workers" validate:"min=1,max=256"`

	// NeutralGuestColor replaces the guest color when both teams match.
	NeutralGuestColor string `koanf:"neutral_guest_color" validate:"hexcolor"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":9080",
		TemplateVersion:       "current",
		Timezone:              "UTC",
		MaxRequestBytes:       8 << 20,
		MaxMatchesPerDivision: 500,
		RenderTimeoutMS:       10_000,
		ArchiveWorkers:        8,
		NeutralGuestColor:     "#BDBDBD",
	}
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// RenderTimeout is RenderTimeoutMS as a duration.
func (c *Config) RenderTimeout() time.Duration {
	return time.Duration(c.RenderTimeoutMS) * time.Millisecond
}

package config

import (
	"context"
	"os"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment names.
const (
	EnvPrefix = "SCORESHEET_"
	EnvFile   = EnvPrefix + "CONFIG"
)

// Load builds a Config by layering, low to high precedence:
//  1. defaults (New)
//  2. YAML file named by SCORESHEET_CONFIG, if set
//  3. env vars prefixed SCORESHEET_
func Load(ctx context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, crerr.Mark(crerr.Wrapf(err, "read %s", path), ErrLoadConfig)
		}
	}

	// SCORESHEET_ARCHIVE_WORKERS -> archive_workers; keys are flat.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read env"), ErrLoadConfig)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "decode"), ErrLoadConfig)
	}
	if err := Validate(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and that the timezone resolves.
func Validate(ctx context.Context, cfg *Config) error {
	if err := validator.New().StructCtx(ctx, cfg); err != nil {
		return crerr.Mark(crerr.Wrap(err, "validate"), ErrInvalidConfig)
	}
	if _, err := cfg.Location(); err != nil {
		return crerr.Mark(crerr.Wrapf(err, "timezone %q", cfg.Timezone), ErrInvalidConfig)
	}
	return nil
}

package config

import (
	crerr "github.com/cockroachdb/errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = crerr.New("invalid config")
	ErrLoadConfig    = crerr.New("load config failed")
)

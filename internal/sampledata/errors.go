package sampledata

import crerr "github.com/cockroachdb/errors"

// Sentinel errors for the sample generator.
var (
	ErrInvalidConfig = crerr.New("invalid sample configuration")
	ErrWrite         = crerr.New("write sample reports")
)

package service

import crerr "github.com/cockroachdb/errors"

// Sentinel error kinds returned by the service. The HTTP layer maps them to
// status codes.
var (
	ErrNotStarted      = crerr.New("service not started")
	ErrInvalidInput    = crerr.New("invalid input")
	ErrTooManyMatches  = crerr.New("too many matches")
	ErrArchiveRejected = crerr.New("archive task rejected")
)

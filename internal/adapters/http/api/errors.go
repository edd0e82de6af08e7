package api

import (
	"net/http"

	crerr "github.com/cockroachdb/errors"

	service "github.com/okian/scoresheet/internal/app"
	"github.com/okian/scoresheet/internal/domain/match"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest      = crerr.New("bad request")
	ErrPayloadTooLarge = crerr.New("payload too large")
)

// NewKind returns an error of the given kind tagged with op.
func NewKind(op string, kind error) error {
	return crerr.Wrap(kind, op)
}

// WrapKind wraps cause with op and marks it with kind.
func WrapKind(op string, kind, cause error) error {
	return crerr.Mark(crerr.Wrap(cause, op), kind)
}

// Wrap tags err with op, keeping its kind.
func Wrap(op string, err error) error {
	return crerr.Wrap(err, op)
}

// statusFor maps an error kind to a status code and a response code.
func statusFor(err error) (int, string) {
	switch {
	case crerr.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, "payload_too_large"
	case crerr.Is(err, ErrBadRequest), crerr.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "bad_request"
	case crerr.Is(err, service.ErrTooManyMatches):
		return http.StatusBadRequest, "limit_exceeded"
	case crerr.Is(err, service.ErrArchiveRejected):
		return http.StatusTooManyRequests, "backpressure"
	case crerr.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "not_ready"
	case crerr.Is(err, match.ErrDataIntegrity):
		return http.StatusInternalServerError, "data_integrity"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

package workbook

import crerr "github.com/cockroachdb/errors"

// Error constants
var (
	ErrBuild     = crerr.New("workbook build failed")
	ErrCanonical = crerr.New("workbook canonicalization failed")
)

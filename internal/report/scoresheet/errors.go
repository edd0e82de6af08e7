package scoresheet

import crerr "github.com/cockroachdb/errors"

// Error constants
var (
	ErrUnknownKind     = crerr.New("no court layout for match kind")
	ErrUnknownVersion  = crerr.New("unknown template version")
	ErrTemplateExecute = crerr.New("score sheet template failed")
)

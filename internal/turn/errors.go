package turn

import "errors"

var (
	ErrUnknownPhase   = errors.New("unknown phase")
	ErrDuplicatePhase = errors.New("phase listed more than once")
	ErrEmptyCycle     = errors.New("cycle must contain at least one phase")
)

package tiles

import "errors"

var ErrNoTargets = errors.New("button has no targets")

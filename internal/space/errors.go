package space

import "errors"

var ErrDuplicateBody = errors.New("duplicate body id")

package level

import "errors"

var ErrNoLevels = errors.New("no levels loaded")

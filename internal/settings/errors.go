package settings

import "errors"

var (
	ErrNoPath   = errors.New("settings path is required")
	ErrEmptyKey = errors.New("settings key is required")
)

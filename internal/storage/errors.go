package storage

import "errors"

var (
	ErrNotFound       = errors.New("asset not found")
	ErrDuplicateAsset = errors.New("duplicate asset id")
)

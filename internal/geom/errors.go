package geom

import "errors"

var (
	ErrInvalidOrientation = errors.New("invalid die orientation")
	ErrUnknownCurve       = errors.New("unknown curve")
)

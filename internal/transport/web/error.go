package web

import "errors"

var (
	ErrPanic     = errors.New("recovered panic")
	errBadNumber = errors.New("must be a whole number")
)

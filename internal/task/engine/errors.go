package engine

import "errors"

var (
	ErrEmptyCommand = errors.New("empty command")
	ErrNilRunner    = errors.New("nil runner")
)

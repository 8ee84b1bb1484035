package graph

import "errors"

var (
	// ErrFileNotFound indicates that a source file does not exist
	ErrFileNotFound = errors.New("source file not found")

	// ErrSyntax indicates that a source file could not be parsed
	ErrSyntax = errors.New("malformed source")
)

package models

import "errors"

var (
	// ErrInvalidInput is a caller error: empty or missing review text.
	ErrInvalidInput = errors.New("invalid input")
	// ErrArtifactLoad means a vocabulary or model artifact is missing or corrupt.
	ErrArtifactLoad = errors.New("artifact load failure")
	// ErrPersistence wraps issue log read and write failures.
	ErrPersistence = errors.New("persistence failure")
)

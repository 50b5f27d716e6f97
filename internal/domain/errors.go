package domain

import "errors"

var (
	// ErrEmptyMessage indicates a chat message that is empty after trimming
	ErrEmptyMessage = errors.New("message cannot be empty")
	// ErrInvalidRequest indicates invalid request
	ErrInvalidRequest = errors.New("invalid request")
)

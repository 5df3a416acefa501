package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionOverlap  = errors.New("session overlaps an existing session in the batch")
)

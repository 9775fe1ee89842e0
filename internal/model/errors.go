package model

import "errors"

// Store-level outcomes. Services translate them into API errors with
// resource-specific messages.
var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate record")
	ErrReferenced = errors.New("record still referenced")
)

// Package apperr defines the sentinel errors shared by the service and
// handler layers.
package apperr

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrEmptyContent   = errors.New("content is empty")
	ErrContentTooLong = errors.New("content too long")
)

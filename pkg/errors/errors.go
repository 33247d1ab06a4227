package errors

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidData            = errors.New("invalid data type")
	ErrValidation             = errors.New("validation failed")
	ErrMalformedEntity        = errors.New("malformed entity specification")
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrSnapshotCollection     = errors.New("failed to collect metrics snapshot")
	ErrTargetExecution        = errors.New("profile target execution failed")
)

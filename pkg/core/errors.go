package core

import "errors"

// Common errors.
var (
	ErrNotFound        = errors.New("record not found")
	ErrReadOnly        = errors.New("record store is in read-only mode")
	ErrRegistryMissing = errors.New("field-definition registry is not available")
	ErrInvalidRecordID = errors.New("invalid record identifier")
	ErrUnknownStore    = errors.New("unknown record store")
)

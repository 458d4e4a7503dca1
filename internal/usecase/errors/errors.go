package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrConflict      = errors.New("resource conflict")
)

// Entity errors
var (
	ErrEmptyName      = errors.New("name must not be empty")
	ErrEmptySelection = errors.New("at least one entity id is required")
	ErrSelfMerge      = errors.New("source and target must differ")
)

// Processing errors
var (
	ErrEmptyTranscript  = errors.New("transcript must not be empty")
	ErrGenerationFailed = errors.New("text generation failed")
	ErrStorageDisabled  = errors.New("transcript storage is not configured")
)

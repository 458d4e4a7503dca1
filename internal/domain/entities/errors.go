package entities

import "errors"

// Domain errors
var (
	// Entity errors
	ErrEntityNotFound     = errors.New("entity not found")
	ErrEntityNameConflict = errors.New("entity name already exists")

	// Entity type errors
	ErrEntityTypeNotFound = errors.New("entity type not found")
	ErrEntityTypeExists   = errors.New("entity type already exists")
	ErrEntityTypeInUse    = errors.New("entity type is in use")
	ErrSystemEntityType   = errors.New("system entity type is immutable")

	// Meeting errors
	ErrMeetingNotFound     = errors.New("meeting not found")
	ErrMeetingTypeNotFound = errors.New("meeting type not found")
	ErrMeetingTypeExists   = errors.New("meeting type already exists")
	ErrMeetingTypeInUse    = errors.New("meeting type is in use")
	ErrSystemMeetingType   = errors.New("system meeting type cannot be deleted")

	// Action item errors
	ErrActionItemNotFound  = errors.New("action item not found")
	ErrInvalidActionStatus = errors.New("invalid action item status")

	// Generic errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid request")
)

package domain

import "errors"

// Not-found: the referenced entity does not exist or is not visible to the
// caller (a chat the caller does not participate in reports as not found).
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrMatchNotFound = errors.New("match not found")
	ErrChatNotFound  = errors.New("chat not found")

	ErrSessionNotFound = errors.New("session not found")
)

// Validation.
var (
	ErrCannotLikeSelf     = errors.New("cannot like yourself")
	ErrEmptyMessage       = errors.New("message content must not be empty")
	ErrInvalidCoordinates = errors.New("coordinates out of range")
	ErrInvalidTimeSlot    = errors.New("invalid time slot")
	ErrInvalidEnumValue   = errors.New("invalid enum value")
)

// Conflict.
var (
	ErrPendingMatchExists = errors.New("pending match already exists")
	ErrAlreadyMatched     = errors.New("users are already matched")
)

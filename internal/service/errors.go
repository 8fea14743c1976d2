package service

import (
	"errors"
)

// Service errors are sentinels so handlers can map them onto HTTP
// statuses with errors.Is; anything else falls through as a 500.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrEmailExists        = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("insufficient permissions")

	ErrAlreadyAttending     = errors.New("you are already attending this event")
	ErrEventFull            = errors.New("event is full")
	ErrNotAttending         = errors.New("you are not attending this event")
	ErrEventNotJoinable     = errors.New("event is no longer open for joining")
	ErrAttendanceNotPending = errors.New("attendance request is not pending")
	ErrMustBeAttending      = errors.New("you must be attending the event to do this")

	ErrDuplicateReview   = errors.New("you have already reviewed this event")
	ErrEventNotCompleted = errors.New("you can only review completed events")
)

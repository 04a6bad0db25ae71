package service

import "errors"

var (
	// ErrEmptyUserName is returned when a blank display name is submitted.
	ErrEmptyUserName = errors.New("empty user name")

	// ErrInvalidTime is returned when an entry's wall-clock time is not in
	// HH:MM form.
	ErrInvalidTime = errors.New("invalid entry time")
)

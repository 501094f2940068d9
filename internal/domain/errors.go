package domain

import "errors"

var (
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrNetwork             = errors.New("network error")
	ErrNoContacts          = errors.New("no emergency contacts")
	ErrSendFailed          = errors.New("send failed")
	ErrTimedOut            = errors.New("request timed out")

	// ErrGuidanceSuperseded is returned to a guidance caller whose request
	// was replaced by a newer one before it settled.
	ErrGuidanceSuperseded = errors.New("guidance request superseded")

	ErrInvalidContact = errors.New("invalid contact")
	ErrInvalidProfile = errors.New("invalid profile")
)

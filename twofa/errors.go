package twofa

import "errors"

var (
	// ErrInvalidType is returned when a value is not one of the two factor types
	ErrInvalidType = errors.New("invalid two factor authentication type")
	// ErrNotEnabled is returned when verifying a user that does not have two factor authentication enabled
	ErrNotEnabled = errors.New("two factor authentication is not enabled")
	// ErrPhoneNumberRequired is returned when SMS text is requested by a user without a phone number
	ErrPhoneNumberRequired = errors.New("a phone number is required for SMS text two factor authentication")
	// ErrUserNotFound is returned by a UserDirectory when there is no user with the given email
	ErrUserNotFound = errors.New("no user with the given email")
	// ErrLocked is returned when the two factor configuration of the user is being changed by another request
	ErrLocked = errors.New("two factor configuration is locked")
	// ErrConfigChanged is returned when the two factor configuration changed after it was read
	ErrConfigChanged = errors.New("two factor configuration changed")
)

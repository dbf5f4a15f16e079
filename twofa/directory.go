package twofa

import "context"

// Account is the two factor view of a user
type Account struct {
	Email       string
	Type        Type
	Secret      *string
	DataURL     *string
	PhoneNumber *string
}

// UserDirectory persists and retrieves the two factor fields of a user keyed by email
type UserDirectory interface {
	// Account returns ErrUserNotFound when there is no user with the email
	Account(ctx context.Context, email string) (*Account, error)
	// SaveTwoFactor overwrites the type, secret and the provisioning image
	SaveTwoFactor(ctx context.Context, email string, t Type, secret, dataURL *string) error
	// ConfirmTwoFactorType replaces the pending type with its confirmed type only while the
	// stored type and secret are still pending and secret, otherwise it returns ErrConfigChanged
	ConfirmTwoFactorType(ctx context.Context, email string, pending Type, secret string) error
}

// Notifier delivers a text message to a phone number
type Notifier interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

// Locker serializes the changes made to the two factor configuration of a single user
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/VinukaThejana/nomad/connect"
	"github.com/VinukaThejana/nomad/models"
	"github.com/VinukaThejana/nomad/twofa"
	"gorm.io/gorm"
)

// User contains all the user related services, it is also the user directory of the two factor manager
type User struct {
	Conn *connect.Connector
}

var _ twofa.UserDirectory = (*User)(nil)

// GetUserWithEmail is a function that is used to get the user with the given email address
func (u *User) GetUserWithEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := u.Conn.DB.WithContext(ctx).Where(&models.User{
		Email: email,
	}).First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Create is a function that is used to create a new user in the relational database
func (u *User) Create(ctx context.Context, user models.User) (
	newUser models.User,
	err error,
) {
	newUser = user
	newUser.TwoFAType = twofa.None
	err = u.Conn.DB.WithContext(ctx).Create(&newUser).Error
	if err != nil {
		return models.User{}, err
	}

	return newUser, nil
}

// SetPhoneNumber is a function that is used to update the phone number of the user
func (u *User) SetPhoneNumber(ctx context.Context, email, phoneNumber string) error {
	return u.update(ctx, email, map[string]interface{}{
		"phone_number": phoneNumber,
	})
}

// Account is a function that is used to get the two factor details of the user
func (u *User) Account(ctx context.Context, email string) (*twofa.Account, error) {
	var user models.User
	err := u.Conn.DB.WithContext(ctx).
		Select("email", "phone_number", "two_fa_type", "two_fa_secret", "two_fa_data_url").
		Where(&models.User{
			Email: email,
		}).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, twofa.ErrUserNotFound
		}

		return nil, fmt.Errorf("get two factor details: %w", err)
	}

	return &twofa.Account{
		Email:       user.Email,
		Type:        user.TwoFAType,
		Secret:      user.TwoFASecret,
		DataURL:     user.TwoFADataURL,
		PhoneNumber: user.PhoneNumber,
	}, nil
}

// SaveTwoFactor is a function that is used to overwrite the two factor details of the user
func (u *User) SaveTwoFactor(ctx context.Context, email string, t twofa.Type, secret, dataURL *string) error {
	return u.update(ctx, email, map[string]interface{}{
		"two_fa_type":     t,
		"two_fa_secret":   nullable(secret),
		"two_fa_data_url": nullable(dataURL),
	})
}

// ConfirmTwoFactorType is a function that is used to confirm the pending two factor type of the user,
// the row is only updated while it still carries the pending type and the secret that was verified
func (u *User) ConfirmTwoFactorType(ctx context.Context, email string, pending twofa.Type, secret string) error {
	res := u.Conn.DB.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND two_fa_type = ? AND two_fa_secret = ?", email, pending, secret).
		Update("two_fa_type", pending.Confirm())
	if res.Error != nil {
		return fmt.Errorf("confirm two factor type: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return twofa.ErrConfigChanged
	}

	return nil
}

func (u *User) update(ctx context.Context, email string, values map[string]interface{}) error {
	res := u.Conn.DB.WithContext(ctx).Model(&models.User{}).Where(&models.User{
		Email: email,
	}).Updates(values)
	if res.Error != nil {
		return fmt.Errorf("update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return twofa.ErrUserNotFound
	}

	return nil
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

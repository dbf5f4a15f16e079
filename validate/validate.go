// Package validate contains custom validation functions
package validate

import (
	"encoding/base32"
	"regexp"
	"strings"

	"github.com/VinukaThejana/nomad/twofa"
	"github.com/go-playground/validator/v10"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

var otpRegex = regexp.MustCompile(`^[0-9]{6}$`)

// Password is custom validation function that is used to validate passwords
func Password(fl validator.FieldLevel) bool {
	const minEntropy = 60
	password := fl.Field().String()

	err := passwordvalidator.Validate(password, minEntropy)
	return err == nil
}

// OTP is a custom validation function that is used to validate the 6 digit TOTP tokens
func OTP(fl validator.FieldLevel) bool {
	return otpRegex.MatchString(fl.Field().String())
}

// TwoFASetupType is a custom validation function that only allows the types a user may request
// while setting up two factor authentication, confirmed types are only reached through verification
func TwoFASetupType(fl validator.FieldLevel) bool {
	t, err := twofa.ParseType(fl.Field().String())
	if err != nil {
		return false
	}

	return t.IsNone() || t.Pending
}

// Base32 is a custom validation function that is used to validate the shared TOTP secrets
func Base32(fl validator.FieldLevel) bool {
	secret := strings.ToUpper(strings.TrimRight(fl.Field().String(), "="))
	if secret == "" {
		return false
	}

	_, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
	return err == nil
}

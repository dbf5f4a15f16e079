package controllers

import (
	"github.com/VinukaThejana/go-utils/logger"
	"github.com/VinukaThejana/nomad/errors"
	"github.com/VinukaThejana/nomad/session"
	"github.com/VinukaThejana/nomad/twofa"
	"github.com/VinukaThejana/nomad/validate"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TwoFA is a struct that contains the two factor authentication controllers
type TwoFA struct {
	Manager *twofa.Manager
}

// Setup is a function that is used to generate and persist a new TOTP secret for the logged in user
func (t *TwoFA) Setup(c *fiber.Ctx) error {
	var payload struct {
		TwoFAType string `json:"twoFAType" validate:"required,validate_twofa_setup_type"`
	}

	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	v := validator.New()
	v.RegisterValidation("validate_twofa_setup_type", validate.TwoFASetupType)
	err := v.Struct(payload)
	if err != nil {
		return errors.InvalidTwoFAType(c)
	}

	user := session.Get(c)
	if user == nil {
		return errors.Unauthorized(c)
	}

	requested, err := twofa.ParseType(payload.TwoFAType)
	if err != nil {
		return errors.InvalidTwoFAType(c)
	}

	data, err := t.Manager.SetupSecret(c.UserContext(), user.Email, requested)
	if err != nil {
		return errors.TwoFA(c, err)
	}

	// The secret is already persisted at this point
	if requested == twofa.SMSTextTemp && (data.PhoneNumber == nil || *data.PhoneNumber == "") {
		return errors.SetAPhoneNumber(c)
	}

	return errors.Success(c, "TOTP Secret created", data)
}

// Status is a function that is used to get the two factor configuration of the logged in user
func (t *TwoFA) Status(c *fiber.Ctx) error {
	user := session.Get(c)
	if user == nil {
		return errors.Unauthorized(c)
	}

	data, err := t.Manager.Status(c.UserContext(), user.Email)
	if err != nil {
		return errors.TwoFA(c, err)
	}

	return errors.Success(c, "TOTP Secret retrieved", data)
}

// Disable is a function that is used to disable two factor authentication for the logged in user
func (t *TwoFA) Disable(c *fiber.Ctx) error {
	user := session.Get(c)
	if user == nil {
		return errors.Unauthorized(c)
	}

	data, err := t.Manager.Disable(c.UserContext(), user.Email)
	if err != nil {
		return errors.TwoFA(c, err)
	}

	return errors.Success(c, "TOTP Secret removed", data)
}

// Verify is a function that is used to verify a TOTP token of the logged in user
func (t *TwoFA) Verify(c *fiber.Ctx) error {
	var payload struct {
		Token string `json:"token" validate:"required,validate_otp"`
	}

	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	v := validator.New()
	v.RegisterValidation("validate_otp", validate.OTP)
	err := v.Struct(payload)
	if err != nil {
		return errors.InvalidTOTPTokenFormat(c)
	}

	user := session.Get(c)
	if user == nil {
		return errors.Unauthorized(c)
	}

	status, err := t.Manager.Status(c.UserContext(), user.Email)
	if err != nil {
		return errors.TwoFA(c, err)
	}
	if status.Type.IsNone() {
		return errors.TwoFactorNotEnabled(c)
	}

	var secret string
	if status.Secret != nil {
		secret = *status.Secret
	}

	isTokenValid, err := t.Manager.Verify(c.UserContext(), twofa.VerifyInput{
		Email:  user.Email,
		Type:   status.Type,
		Secret: secret,
		Token:  payload.Token,
	})
	if err != nil {
		return errors.TwoFA(c, err)
	}

	data := fiber.Map{
		"twoFAType":    status.Type,
		"twoFASecret":  status.Secret,
		"isTokenValid": isTokenValid,
	}
	if status.Type.IsSMS() {
		data["phoneNumber"] = status.PhoneNumber
	} else {
		data["twoFADataURL"] = status.DataURL
	}

	if !isTokenValid {
		return errors.InvalidTOTPToken(c, data)
	}

	return errors.Success(c, "Valid TOTP token", data)
}

// SendTokenText is a function that is used to send the current TOTP token of a secret through SMS text
func (t *TwoFA) SendTokenText(c *fiber.Ctx) error {
	var payload struct {
		Secret      string `json:"secret" validate:"required,validate_base32"`
		PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
	}

	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	v := validator.New()
	v.RegisterValidation("validate_base32", validate.Base32)
	err := v.Struct(payload)
	if err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	data, err := t.Manager.DispatchSMSToken(c.UserContext(), payload.Secret, payload.PhoneNumber)
	if err != nil {
		return errors.TwoFA(c, err)
	}

	return errors.Success(c, "TOTP token sent", data)
}

package controllers

import (
	"github.com/VinukaThejana/go-utils/logger"
	"github.com/VinukaThejana/nomad/errors"
	"github.com/VinukaThejana/nomad/twofa"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Admin is a struct that contains all the admin related controllers
type Admin struct {
	Manager *twofa.Manager
}

// DisableTwoFactor is a function that is used to reset the two factor authentication of a user
// that lost access to the phone or the authenticator app
func (a *Admin) DisableTwoFactor(c *fiber.Ctx) error {
	var payload struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	err := validator.New().Struct(payload)
	if err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	data, err := a.Manager.Disable(c.UserContext(), payload.Email)
	if err != nil {
		if err == twofa.ErrUserNotFound {
			return errors.NoAccountWithEmail(c)
		}

		return errors.TwoFA(c, err)
	}

	return errors.Success(c, "TOTP Secret removed", data)
}

package controllers

import (
	"github.com/VinukaThejana/go-utils/logger"
	"github.com/VinukaThejana/nomad/connect"
	"github.com/VinukaThejana/nomad/errors"
	"github.com/VinukaThejana/nomad/services"
	"github.com/VinukaThejana/nomad/session"
	"github.com/VinukaThejana/nomad/twofa"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// User is a struct that contains user controllers
type User struct {
	Conn *connect.Connector
}

// SetPhoneNumber is a function that is used to set the phone number that SMS text tokens are delivered to
func (u *User) SetPhoneNumber(c *fiber.Ctx) error {
	var payload struct {
		PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
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

	user := session.Get(c)
	if user == nil {
		return errors.Unauthorized(c)
	}

	userS := services.User{
		Conn: u.Conn,
	}
	err = userS.SetPhoneNumber(c.UserContext(), user.Email, payload.PhoneNumber)
	if err != nil {
		if err == twofa.ErrUserNotFound {
			return errors.Unauthorized(c)
		}

		logger.Error(err)
		return errors.InternalServerErr(c)
	}

	return errors.Success(c, "Phone number updated", fiber.Map{
		"phoneNumber": payload.PhoneNumber,
	})
}

package controllers

import (
	"github.com/VinukaThejana/go-utils/logger"
	"github.com/VinukaThejana/nomad/config"
	"github.com/VinukaThejana/nomad/connect"
	"github.com/VinukaThejana/nomad/enums"
	"github.com/VinukaThejana/nomad/errors"
	"github.com/VinukaThejana/nomad/models"
	"github.com/VinukaThejana/nomad/schemas"
	"github.com/VinukaThejana/nomad/services"
	"github.com/VinukaThejana/nomad/utils"
	"github.com/VinukaThejana/nomad/validate"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Auth struct contains all the auth related controllers
type Auth struct {
	Conn *connect.Connector
	Env  *config.Env
}

// Signup is a function that is used to register users with the email and password
func (a *Auth) Signup(c *fiber.Ctx) error {
	var payload struct {
		FirstName   string `json:"firstName" validate:"required,min=2,max=60"`
		LastName    string `json:"lastName" validate:"max=60"`
		Email       string `json:"email" validate:"required,email"`
		Password    string `json:"password" validate:"required,min=8,max=200,validate_password"`
		PhoneNumber string `json:"phoneNumber" validate:"omitempty,e164"`
	}

	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	v := validator.New()
	v.RegisterValidation("validate_password", validate.Password)
	err := v.Struct(payload)
	if err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error(err)
		return errors.InternalServerErr(c)
	}

	newUserD := models.User{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Password:  string(hashedPassword),
		Role:      enums.Requester,
	}
	if payload.PhoneNumber != "" {
		newUserD.PhoneNumber = &payload.PhoneNumber
	}

	userS := services.User{
		Conn: a.Conn,
	}
	newUser, err := userS.Create(c.UserContext(), newUserD)
	if err != nil {
		if ok := (errors.CheckDBError{}.DuplicateKey(err)); ok {
			return errors.EmailAlreadyUsed(c)
		}

		logger.Error(err)
		return errors.InternalServerErr(c)
	}

	return errors.Success(c, "User created", schemas.FilterUser(newUser))
}

// Login is a funciton that is used to login the user with the email and password
func (a *Auth) Login(c *fiber.Ctx) error {
	var payload struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8,max=200"`
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

	userS := services.User{
		Conn: a.Conn,
	}

	user, err := userS.GetUserWithEmail(c.UserContext(), payload.Email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NoAccountWithEmail(c)
		}

		logger.Error(err)
		return errors.InternalServerErr(c)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password))
	if err != nil {
		return errors.InCorrectCredentials(c)
	}

	accessToken, err := utils.GenerateCookies(c, user, a.Env)
	if err != nil {
		logger.ErrorWithMsg(err, "Failed to create the access token")
		return errors.InternalServerErr(c)
	}

	return errors.Success(c, "Logged in", fiber.Map{
		"token": accessToken,
		"user":  schemas.FilterUser(*user),
	})
}

// Package errors contians http errors and other custom errors
package errors

import (
	errs "errors"
	"fmt"
	"time"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/VinukaThejana/nomad/schemas"
	"github.com/VinukaThejana/nomad/twofa"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//revive:disable

var (
	ErrInternalServerError     = fmt.Errorf("Internal server error")
	ErrUnauthorized            = fmt.Errorf("Unauthorized")
	ErrAccessTokenNotProvided  = fmt.Errorf("Access token not provided")
	ErrAccessTokenExpired      = fmt.Errorf("Access token expired")
	ErrBadRequest              = fmt.Errorf("Bad request")
	ErrIncorrectCredentials    = fmt.Errorf("Incorrect credentials")
	ErrEmailAlreadyUsed        = fmt.Errorf("Email already used")
	ErrNoAccountWithEmail      = fmt.Errorf("No account with the given email")
	ErrTwoFactorNotEnabled     = fmt.Errorf("User doesn't have 2FA enabled.")
	ErrSetAPhoneNumber         = fmt.Errorf("You need to set a phoneNumber to activate 2FA with SMS.")
	ErrInvalidTOTPToken        = fmt.Errorf("Invalid TOTP token")
	ErrInvalidTOTPTokenFormat  = fmt.Errorf("Invalid token - 6 numeric characters are required")
	ErrInvalidTwoFAType        = fmt.Errorf("Invalid 2FA type")
	ErrTwoFactorConfigIsLocked = fmt.Errorf("2FA configuration is being changed, try again")
	ErrTwoFactorConfigChanged  = fmt.Errorf("2FA configuration changed, fetch it again")
)

const (
	Okay   = "success"
	Failed = "error"
)

func fail(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(schemas.Res{
		Status:  Failed,
		Message: err.Error(),
	})
}

func InternalServerErr(c *fiber.Ctx) error {
	return fail(c, fiber.StatusInternalServerError, ErrInternalServerError)
}

func Unauthorized(c *fiber.Ctx) error {
	return fail(c, fiber.StatusUnauthorized, ErrUnauthorized)
}

func AccessTokenExpired(c *fiber.Ctx) error {
	expired := time.Now().Add(-time.Hour * 24)
	c.Cookie(&fiber.Cookie{
		Name:    "access_token",
		Value:   "",
		Expires: expired,
	})
	return fail(c, fiber.StatusUnauthorized, ErrAccessTokenExpired)
}

func AccessTokenNotProvided(c *fiber.Ctx) error {
	return fail(c, fiber.StatusUnauthorized, ErrAccessTokenNotProvided)
}

func InCorrectCredentials(c *fiber.Ctx) error {
	return fail(c, fiber.StatusUnauthorized, ErrIncorrectCredentials)
}

func BadRequest(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, ErrBadRequest)
}

func EmailAlreadyUsed(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, ErrEmailAlreadyUsed)
}

func NoAccountWithEmail(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, ErrNoAccountWithEmail)
}

func TwoFactorNotEnabled(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, ErrTwoFactorNotEnabled)
}

func SetAPhoneNumber(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, ErrSetAPhoneNumber)
}

func InvalidTOTPTokenFormat(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, ErrInvalidTOTPTokenFormat)
}

func InvalidTwoFAType(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, ErrInvalidTwoFAType)
}

func InvalidTOTPToken(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusBadRequest).JSON(schemas.Res{
		Status:  Failed,
		Message: ErrInvalidTOTPToken.Error(),
		Data:    data,
	})
}

func TwoFactorConfigIsLocked(c *fiber.Ctx) error {
	return fail(c, fiber.StatusConflict, ErrTwoFactorConfigIsLocked)
}

func TwoFactorConfigChanged(c *fiber.Ctx) error {
	return fail(c, fiber.StatusConflict, ErrTwoFactorConfigChanged)
}

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(schemas.Res{
		Status:  Okay,
		Message: message,
		Data:    data,
	})
}

func Done(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(schemas.Res{
		Status: Okay,
	})
}

//revive:enable

// TwoFA is a function that is used to map the errors returned by the two factor manager to a response
func TwoFA(c *fiber.Ctx, err error) error {
	switch {
	case errs.Is(err, twofa.ErrNotEnabled):
		return TwoFactorNotEnabled(c)
	case errs.Is(err, twofa.ErrPhoneNumberRequired):
		return SetAPhoneNumber(c)
	case errs.Is(err, twofa.ErrInvalidType):
		return InvalidTwoFAType(c)
	case errs.Is(err, twofa.ErrUserNotFound):
		return Unauthorized(c)
	case errs.Is(err, twofa.ErrLocked):
		return TwoFactorConfigIsLocked(c)
	case errs.Is(err, twofa.ErrConfigChanged):
		return TwoFactorConfigChanged(c)
	default:
		logger.Error(err)
		return InternalServerErr(c)
	}
}

// CheckDBError is a struc that is used to identify the database errors
type CheckDBError struct{}

// DuplicateKey is a function that is used to find wether the the returned postgres error
// is due to a duplicate key entry (A unique key constraint)
func (CheckDBError) DuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errs.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return true
		}
	}

	return false
}

// CheckTokenError is a struct that is used to handle token related errors
type CheckTokenError struct{}

// Expired is a function that is used to identify wether the token is expired or not
func (CheckTokenError) Expired(err error) bool {
	return errs.Is(err, jwt.ErrTokenExpired)
}

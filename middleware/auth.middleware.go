// Package middleware contains the fiber middlewares
package middleware

import (
	"strings"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/VinukaThejana/nomad/config"
	"github.com/VinukaThejana/nomad/errors"
	"github.com/VinukaThejana/nomad/session"
	"github.com/VinukaThejana/nomad/token"
	"github.com/gofiber/fiber/v2"
)

// Auth contains auth related middlewares
type Auth struct {
	Env *config.Env
}

// CheckAdmin is a function that is used to check wether the user is a Admin user
func (a *Auth) CheckAdmin(c *fiber.Ctx) error {
	var adminToken string
	authorization := c.Get("Authorization")

	if strings.HasPrefix(authorization, "Bearer ") {
		adminToken = strings.TrimPrefix(authorization, "Bearer ")
	} else {
		return errors.Unauthorized(c)
	}

	if adminToken != a.Env.AdminSecret {
		return errors.Unauthorized(c)
	}

	return c.Next()
}

// Check is a function that is used to check wether the user is authenticated
func (a *Auth) Check(c *fiber.Ctx) error {
	var accessToken string
	authorization := c.Get("Authorization")

	if strings.HasPrefix(authorization, "Bearer ") {
		accessToken = strings.TrimPrefix(authorization, "Bearer ")
	} else if c.Cookies("access_token") != "" {
		accessToken = c.Cookies("access_token")
	} else {
		return errors.AccessTokenNotProvided(c)
	}

	accessTokenS := token.AccessToken{
		Env: a.Env,
	}

	claims, err := accessTokenS.Validate(accessToken)
	if err != nil {
		if isExpired := (errors.CheckTokenError{}.Expired(err)); isExpired {
			return errors.AccessTokenExpired(c)
		}

		logger.Error(err)
		return errors.Unauthorized(c)
	}

	session.Add(c, claims)
	session.SaveAccessToken(c, accessToken)

	return c.Next()
}

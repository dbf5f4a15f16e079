package utils

import (
	"github.com/VinukaThejana/nomad/config"
	"github.com/VinukaThejana/nomad/models"
	"github.com/VinukaThejana/nomad/token"
	"github.com/gofiber/fiber/v2"
)

// GenerateCookies is a function that is used to generate the access token cookie that is used to login the user
func GenerateCookies(c *fiber.Ctx, user *models.User, env *config.Env) (accessToken string, err error) {
	accessTokenS := token.AccessToken{
		Env: env,
	}

	accessTokenD, err := accessTokenS.Create(*user)
	if err != nil {
		return "", err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    *accessTokenD.Token,
		Path:     "/",
		MaxAge:   env.AccessTokenMaxAge * 60,
		Secure:   config.GetDevEnv(env) == config.Prod,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return *accessTokenD.Token, nil
}

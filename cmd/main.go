// Nomad is the two factor authentication backend of Barefoot Nomad
package main

import (
	"fmt"
	"time"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/VinukaThejana/nomad/config"
	"github.com/VinukaThejana/nomad/connect"
	"github.com/VinukaThejana/nomad/controllers"
	"github.com/VinukaThejana/nomad/middleware"
	"github.com/VinukaThejana/nomad/services"
	"github.com/VinukaThejana/nomad/twofa"
	"github.com/VinukaThejana/nomad/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
)

var (
	env  config.Env
	conn connect.Connector
)

func init() {
	env.Load()

	conn.InitDatabase(&env)
	utils.CheckForMigrations(&conn, &env)

	conn.InitRatelimiter(&env)
	conn.InitRedis(&env)
	conn.InitTwilio(&env)
}

func main() {
	app := fiber.New()
	if config.GetDevEnv(&env) == config.Dev {
		app.Use(fiberLogger.New())
	}

	app.Use(cors.New(cors.Config{
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowOrigins:     env.FrontendHostname,
		AllowCredentials: true,
		AllowMethods:     "*",
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusTooManyRequests)
		},
		SkipFailedRequests:     false,
		SkipSuccessfulRequests: false,
		LimiterMiddleware:      limiter.SlidingWindow{},
		Storage:                conn.Ratelimiter,
	}))

	userS := services.User{
		Conn: &conn,
	}
	smsS := services.SMS{
		Client: conn.SMS,
		From:   env.TwilioFrom,
	}

	opts := twofa.Options{
		Issuer:                  env.TwoFAIssuer,
		RequirePhoneBeforeSetup: env.TwoFARequirePhoneBeforeSetup,
		ConfirmOnValidTokenOnly: env.TwoFAConfirmOnValidTokenOnly,
	}
	if conn.R.Lock != nil {
		opts.Locker = &services.Lock{
			Client: conn.R.Lock,
			TTL:    env.LockTTL,
			Wait:   env.LockWait,
		}
	}
	manager := twofa.New(&userS, &smsS, opts)

	authM := middleware.Auth{
		Env: &env,
	}

	authC := controllers.Auth{
		Conn: &conn,
		Env:  &env,
	}
	userC := controllers.User{
		Conn: &conn,
	}
	twoFAC := controllers.TwoFA{
		Manager: manager,
	}
	adminC := controllers.Admin{
		Manager: manager,
	}
	systemC := controllers.System{
		Conn: &conn,
	}

	app.Get("/health", systemC.Health)

	app.Route("/api/v1", func(router fiber.Router) {
		router.Route("/auth", func(router fiber.Router) {
			router.Post("/signup", authC.Signup)
			router.Post("/login", authC.Login)
		})

		router.Route("/users", func(router fiber.Router) {
			router.Patch("/phone", authM.Check, userC.SetPhoneNumber)
		})

		router.Route("/2fa/totp", func(router fiber.Router) {
			router.Patch("/setup", authM.Check, twoFAC.Setup)
			router.Get("/setup", authM.Check, twoFAC.Status)
			router.Patch("/disable", authM.Check, twoFAC.Disable)
			router.Post("/verify", authM.Check, twoFAC.Verify)
			router.Post("/send-token-text", authM.Check, twoFAC.SendTokenText)
		})

		router.Route("/admin", func(router fiber.Router) {
			router.Delete("/users/2fa", authM.CheckAdmin, adminC.DisableTwoFactor)
		})
	})

	app.Route("/monitor", func(router fiber.Router) {
		router.Get("/metrics", monitor.New(monitor.Config{
			Title: "Monitor Nomad",
		}))
	})

	logger.Log(fmt.Sprintf("Listening on port %s", env.Port))
	logger.Errorf(app.Listen(fmt.Sprintf(":%s", env.Port)))
}

package controllers

import (
	"strconv"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/VinukaThejana/nomad/connect"
	"github.com/VinukaThejana/nomad/enums"
	"github.com/gofiber/fiber/v2"
)

// System is a struct that contains system level controllers
type System struct {
	Conn *connect.Connector
}

// Health is a function that reports the health flag and message set by the operators, the
// system redis being unreachable is reported as unhealthy
func (s *System) Health(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if err := s.Conn.R.System.Ping(ctx).Err(); err != nil {
		logger.Error(err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"health": false,
		})
	}

	values, err := s.Conn.R.System.MGet(ctx, enums.SysHealth, enums.SysHealthMsg).Result()
	if err != nil {
		logger.Error(err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"health": false,
		})
	}

	res := fiber.Map{
		"health": false,
	}
	if status, ok := values[0].(string); ok {
		if health, err := strconv.ParseBool(status); err == nil {
			res["health"] = health
		}
	}
	if msg, ok := values[1].(string); ok && msg != "" {
		res["message"] = msg
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const MethodOverrideField = "_method"

// MethodOverride lets plain HTML forms reach PATCH, PUT and DELETE routes by posting a
// _method field. It must be registered before any route.
func MethodOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}

		switch method := strings.ToUpper(strings.TrimSpace(c.FormValue(MethodOverrideField))); method {
		case fiber.MethodPatch, fiber.MethodPut, fiber.MethodDelete:
			c.Method(method)
		}
		return c.Next()
	}
}

func RequestLogger(log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		requestID, _ := c.Locals("requestid").(string)
		log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    time.Since(start).String(),
		}).Info("request handled")

		return err
	}
}

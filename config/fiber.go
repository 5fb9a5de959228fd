package config

import (
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

func GetFiberListenAddress() string {
	return fmt.Sprintf("%s:%s", GetFiberHttpHost(), GetFiberHttpPort())
}

func GetFiberConfig(views fiber.Views) fiber.Config {
	return fiber.Config{
		DisableStartupMessage: false,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		Prefork:               false,
		ServerHeader:          GetAppName(),
		AppName:               GetAppName(),
		ReadTimeout:           time.Second * 60,
		CaseSensitive:         true,
		Views:                 views,
		ErrorHandler:          ErrorHandler,
	}
}

// ErrorHandler logs unhandled errors and answers with the status they carry.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	GetLogrusInstance().WithField("path", c.Path()).Errorf("unhandled error: %v", err)
	return c.Status(code).SendString(err.Error())
}

func GetAppName() string {
	v := os.Getenv("APP_NAME")
	if v == "" {
		return "Applicants"
	}

	return v
}

func GetFiberHttpHost() string {
	env := os.Getenv("HTTP_HOST")
	if env != "" {
		return env
	}
	return "0.0.0.0"
}

func GetFiberHttpPort() string {
	env := os.Getenv("HTTP_PORT")
	if env != "" {
		return env
	}
	return "8000"
}

func GetCorsAllowOrigins() string {
	env := os.Getenv("CORS_ALLOW_ORIGINS")
	if env != "" {
		return env
	}
	return "*"
}

// GetContextTimeout is the time budget for a single usecase call.
func GetContextTimeout() time.Duration {
	env := os.Getenv("CONTEXT_TIMEOUT")
	if env == "" {
		return 10 * time.Second
	}

	d, err := time.ParseDuration(env)
	if err != nil || d <= 0 {
		GetLogrusInstance().Warnf("invalid CONTEXT_TIMEOUT %q, using 10s", env)
		return 10 * time.Second
	}
	return d
}

package config

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// NewFiber builds the app. Errors that escape a handler, panics included,
// are answered with fallback so callers never see a raw error.
func NewFiber(logger *logrus.Logger, fallback string) *fiber.App {
	app := fiber.New(
		fiber.Config{
			AppName:           "JinBo",
			BodyLimit:         64 * 1024,
			DisableKeepalive:  false,
			StrictRouting:     true,
			CaseSensitive:     true,
			EnablePrintRoutes: false,
			JSONEncoder:       jsoniter.Marshal,
			JSONDecoder:       jsoniter.Unmarshal,
			ErrorHandler:      newErrorHandler(logger, fallback),
		})

	app.Use(recover.New())
	app.Use(cors.New())

	return app
}

func newErrorHandler(logger *logrus.Logger, fallback string) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		if code < fiber.StatusInternalServerError {
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}

		logger.WithFields(logrus.Fields{
			"path":  c.Path(),
			"error": err.Error(),
		}).Error("Unhandled error")

		return c.Status(code).JSON(fiber.Map{
			"success":  false,
			"response": fallback,
		})
	}
}

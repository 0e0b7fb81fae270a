package middleware

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"loantrack/config"
)

// ErrorHandler is the app-level fiber error handler. Expected fiber errors
// keep their status code; anything else is logged with request context,
// reported to sentry when configured, and answered with a generic 500 so
// internals never leak to the client.
func ErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}

		logger.WithFields(logrus.Fields{
			"method": c.Method(),
			"url":    c.OriginalURL(),
		}).WithError(err).Error("unhandled error")

		if config.AppConfig.SentryDSN != "" {
			sentry.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("method", c.Method())
				scope.SetTag("url", c.OriginalURL())
				sentry.CaptureException(err)
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Something failed.",
		})
	}
}

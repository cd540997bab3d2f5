package handlerUtil

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"

	"github.com/Prateesh-Sulikeri/JinBo/internal/api/chat"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/log"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/response"
)

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Handle writes a generic error body. Unexpected errors are logged with a
// trace id that is echoed to the caller.
func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	traceID := log.ErrorWithTraceID(log.Fields{
		log.RequestIDKey: requestID,
		"error":          err.Error(),
		"path":           path,
		"operation":      operation,
	}, "Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success":  false,
		"error":    "An unexpected error occurred",
		"trace_id": traceID,
	})
}

// HandleChatError answers in the chat response shape: a friendly text for
// rejected input, and the fallback text with a 500 for everything else.
func (h *ErrorHandler) HandleChatError(c *fiber.Ctx, requestID string, err error, path string, fallback string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}

	if text, ok := chat.FriendlyText(err); ok {
		h.logger.WithFields(fields).Warn("Chat message rejected")
		return h.chatResponse(c, fiber.StatusBadRequest, text)
	}

	h.logger.WithFields(fields).Error("Chat request failed")
	return h.chatResponse(c, fiber.StatusInternalServerError, fallback)
}

func (h *ErrorHandler) chatResponse(c *fiber.Ctx, status int, text string) error {
	return c.Status(status).JSON(chat.ChatResponse{
		Success:  false,
		Response: text,
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "Validation failed: " + err.Error(),
		"code":    "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}

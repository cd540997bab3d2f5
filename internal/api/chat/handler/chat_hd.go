package chatHandler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/net/context"

	"github.com/Prateesh-Sulikeri/JinBo/internal/api/chat"
	contextPkg "github.com/Prateesh-Sulikeri/JinBo/pkg/context"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/handlerUtil"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/log"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/profile"
)

// defaultChatTimeout leaves room for a lazy profile refresh whose slowest
// fetch runs into its own timeout.
const defaultChatTimeout = profile.DefaultFetchTimeout + 5*time.Second

func (h *ChatHandler) Chat(ctx *fiber.Ctx) (err error) {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.chatTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	defer func() {
		if r := recover(); r != nil {
			err = errHandler.HandleChatError(ctx, requestID, fmt.Errorf("panic: %v", r), ctx.Path(), h.chatService.Fallback())
		}
	}()

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing chat request")

	req, err := decodeChatRequest(ctx.Body())
	if err != nil {
		return errHandler.HandleChatError(ctx, requestID, err, ctx.Path(), h.chatService.Fallback())
	}

	resp, err := h.chatService.ProcessMessage(c, req)
	if err != nil {
		return errHandler.HandleChatError(ctx, requestID, err, ctx.Path(), h.chatService.Fallback())
	}

	// A produced answer is always sent, even past the deadline.
	if c.Err() != nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
		}).Warn("chat answered after request deadline")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
}

// decodeChatRequest separates a missing message from one that is not a
// string; both arrive as the same zero value through a typed decode.
func decodeChatRequest(body []byte) (chat.ChatRequest, error) {
	if len(body) == 0 {
		return chat.ChatRequest{}, chat.ErrEmptyMessage
	}

	var raw struct {
		Message any `json:"message"`
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, &raw); err != nil {
		return chat.ChatRequest{}, chat.ErrInvalidMessage
	}

	switch msg := raw.Message.(type) {
	case nil:
		return chat.ChatRequest{}, chat.ErrEmptyMessage
	case string:
		return chat.ChatRequest{Message: msg}, nil
	default:
		return chat.ChatRequest{}, chat.ErrInvalidMessage
	}
}

func (h *ChatHandler) Stats(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var query chat.StatsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if query.Hours == 0 {
		query.Hours = 24
	}

	since := time.Now().Add(-time.Duration(query.Hours) * time.Hour)
	stats, err := h.chatService.IntentStats(c, since)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "chat_stats")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, stats)
	}
}

package chatHandler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"

	"github.com/Prateesh-Sulikeri/JinBo/internal/api/chat"
	contextPkg "github.com/Prateesh-Sulikeri/JinBo/pkg/context"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/handlerUtil"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/log"
)

// refreshTimeout covers the slowest fetch plus headroom.
const refreshTimeout = 15 * time.Second

func (h *ChatHandler) Refresh(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), refreshTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	snap := h.chatService.Refresh(c)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"last_fetch": snap.LastFetch,
	}).Info("Profile data refreshed on request")

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, chat.RefreshResponse{Success: true})
	}
}

func (h *ChatHandler) Data(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, chat.DataResponse{
		Success: true,
		Cache:   h.chatService.Snapshot(),
	})
}

func (h *ChatHandler) KBInfo(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.chatService.KnowledgeInfo(ctx.Query("q")))
}

func (h *ChatHandler) Health(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.chatService.Health())
}

package chatHandler

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	chatService "github.com/Prateesh-Sulikeri/JinBo/internal/api/chat/service"
	"github.com/Prateesh-Sulikeri/JinBo/internal/middleware"
)

type ChatHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	chatService chatService.IChatService
	chatTimeout time.Duration
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs chatService.IChatService,
) *ChatHandler {
	return &ChatHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		chatService: cs,
		chatTimeout: defaultChatTimeout,
	}
}

// Start mounts the chat routes on srv, which is expected to be the /api group.
func (h *ChatHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	srv.Post("/chat", h.middleware.NewRateLimiter, h.Chat)

	chat := srv.Group("/chat")
	chat.Use("/ws", wsMiddleware)
	chat.Get("/ws", websocket.New(h.handleChatWebSocket))
	chat.Get("/stats", h.Stats)

	srv.Post("/refresh", h.Refresh)
	srv.Get("/data", h.Data)
	srv.Get("/kb-info", h.KBInfo)
}

package chatHandler

import (
	"fmt"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/Prateesh-Sulikeri/JinBo/internal/api/chat"
	"github.com/Prateesh-Sulikeri/JinBo/internal/middleware"
	contextPkg "github.com/Prateesh-Sulikeri/JinBo/pkg/context"
)

const maxReadTimeout = 5 * time.Minute

// handleChatWebSocket answers every text frame {"message": "..."} with the
// same body POST /api/chat would return.
func (h *ChatHandler) handleChatWebSocket(c *websocket.Conn) {
	requestID, _ := c.Locals(middleware.RequestIDKey).(string)
	logger := h.log.WithField("request_id", requestID)

	logger.Info("Chat WebSocket client connected")
	defer logger.Info("Chat WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			logger.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			logger.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Errorf("Chat WebSocket error: %v", err)
			}
			break
		}

		if messageType != websocket.TextMessage {
			logger.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		resp := h.answerFrame(logger, requestID, message)

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			logger.Errorf("Error setting write deadline: %v", err)
			break
		}
		if err := c.WriteJSON(resp); err != nil {
			logger.Errorf("Error writing JSON response: %v", err)
			break
		}
		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			logger.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}

func (h *ChatHandler) answerFrame(logger *logrus.Entry, requestID string, frame []byte) (resp *chat.ChatResponse) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("error", fmt.Sprint(r)).Error("Chat frame panicked")
			resp = &chat.ChatResponse{Success: false, Response: h.chatService.Fallback()}
		}
	}()

	req, err := decodeChatRequest(frame)
	if err == nil {
		ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), h.chatTimeout)
		defer cancel()
		resp, err = h.chatService.ProcessMessage(ctx, req)
	}
	if err == nil {
		return resp
	}

	logger.WithField("error", err.Error()).Warn("Chat frame rejected")
	text, ok := chat.FriendlyText(err)
	if !ok {
		text = h.chatService.Fallback()
	}
	return &chat.ChatResponse{Success: false, Response: text}
}

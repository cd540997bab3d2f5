package chat

import (
	"errors"

	"github.com/Prateesh-Sulikeri/JinBo/pkg/response"
)

var (
	ErrEmptyMessage       = response.NewError(400, "message is required")
	ErrMessageTooLong     = response.NewError(400, "message exceeds 500 characters")
	ErrInvalidMessage     = response.NewError(400, "message must be a string")
	ErrChatLogUnavailable = response.NewError(503, "chat log is not configured")
)

// Friendly texts returned in place of the raw validation error.
const (
	TextEmptyMessage   = "Please type a question and I'll do my best to answer it."
	TextMessageTooLong = "That message is a bit long. Please keep it under 500 characters."
	TextInvalidMessage = "I can only read plain text messages. Please send your question as text."
)

// FriendlyText returns the text shown to the user when err rejects a message.
func FriendlyText(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrEmptyMessage):
		return TextEmptyMessage, true
	case errors.Is(err, ErrMessageTooLong):
		return TextMessageTooLong, true
	case errors.Is(err, ErrInvalidMessage):
		return TextInvalidMessage, true
	}
	return "", false
}

package chatHandler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prateesh-Sulikeri/JinBo/internal/api/chat"
	"github.com/Prateesh-Sulikeri/JinBo/internal/middleware"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/log"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/profile"
)

const fallbackText = "Sorry, no idea."

type stubService struct {
	process    func(req chat.ChatRequest) (*chat.ChatResponse, error)
	processCtx func(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error)
	snap      profile.Snapshot
	refreshed int
	stats     *chat.StatsResponse
	statsErr  error
	since     time.Time
}

func (s *stubService) ProcessMessage(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error) {
	if s.processCtx != nil {
		return s.processCtx(ctx, req)
	}
	return s.process(req)
}

func (s *stubService) Refresh(context.Context) profile.Snapshot {
	s.refreshed++
	return s.snap
}

func (s *stubService) Snapshot() profile.Snapshot { return s.snap }

func (s *stubService) KnowledgeInfo(query string) chat.KBInfoResponse {
	return chat.KBInfoResponse{Name: "Test Person", Bot: "JinBo", AvailableIntents: []string{query}}
}

func (s *stubService) Health() chat.HealthResponse {
	return chat.HealthResponse{Status: "ok", Bot: "JinBo", Data: s.snap.Presence()}
}

func (s *stubService) IntentStats(_ context.Context, since time.Time) (*chat.StatsResponse, error) {
	s.since = since
	return s.stats, s.statsErr
}

func (s *stubService) Fallback() string { return fallbackText }

func echoService() *stubService {
	return &stubService{process: func(req chat.ChatRequest) (*chat.ChatResponse, error) {
		if strings.TrimSpace(req.Message) == "" {
			return nil, chat.ErrEmptyMessage
		}
		return &chat.ChatResponse{
			Success:  true,
			Response: "echo: " + req.Message,
			Debug:    &chat.Debug{Intent: "greeting", Method: chat.MethodIntent},
		}, nil
	}}
}

func newTestApp(svc *stubService, opts ...func(*ChatHandler)) *fiber.App {
	logger := log.NewDiscardLogger()
	mw := middleware.New(logger)

	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())

	h := New(logger, validator.New(), mw, svc)
	for _, opt := range opts {
		opt(h)
	}
	app.Get("/health", h.Health)
	h.Start(app.Group("/api"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestChatSuccess(t *testing.T) {
	app := newTestApp(echoService())

	status, body := doJSON(t, app, http.MethodPost, "/api/chat", `{"message": "Hello"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "echo: Hello", body["response"])

	debug, ok := body["debug"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "greeting", debug["intent"])
	assert.Equal(t, false, debug["usedFuzzySearch"])
	assert.Equal(t, "intent", debug["method"])
}

func TestChatRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "no body", body: "", want: chat.TextEmptyMessage},
		{name: "missing message", body: `{}`, want: chat.TextEmptyMessage},
		{name: "null message", body: `{"message": null}`, want: chat.TextEmptyMessage},
		{name: "blank message", body: `{"message": "   "}`, want: chat.TextEmptyMessage},
		{name: "number", body: `{"message": 42}`, want: chat.TextInvalidMessage},
		{name: "object", body: `{"message": {"a": 1}}`, want: chat.TextInvalidMessage},
		{name: "not json", body: `message=hi`, want: chat.TextInvalidMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := echoService()
			inner := svc.process
			svc.process = func(req chat.ChatRequest) (*chat.ChatResponse, error) {
				called = true
				return inner(req)
			}

			status, body := doJSON(t, newTestApp(svc), http.MethodPost, "/api/chat", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.want, body["response"])
			assert.NotContains(t, body, "debug")
			if tt.name != "blank message" {
				assert.False(t, called)
			}
		})
	}
}

func TestChatTooLong(t *testing.T) {
	svc := &stubService{process: func(chat.ChatRequest) (*chat.ChatResponse, error) {
		return nil, chat.ErrMessageTooLong
	}}

	status, body := doJSON(t, newTestApp(svc), http.MethodPost, "/api/chat", `{"message": "`+strings.Repeat("a", 501)+`"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, chat.TextMessageTooLong, body["response"])
}

func TestChatInternalFailure(t *testing.T) {
	tests := []struct {
		name    string
		process func(chat.ChatRequest) (*chat.ChatResponse, error)
	}{
		{name: "error", process: func(chat.ChatRequest) (*chat.ChatResponse, error) {
			return nil, errors.New("database exploded")
		}},
		{name: "panic", process: func(chat.ChatRequest) (*chat.ChatResponse, error) {
			panic("nil map")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, newTestApp(&stubService{process: tt.process}), http.MethodPost, "/api/chat", `{"message": "hi"}`)
			assert.Equal(t, http.StatusInternalServerError, status)
			assert.Equal(t, map[string]any{"success": false, "response": fallbackText}, body)
		})
	}
}

func TestChatTimeoutCoversProfileFetch(t *testing.T) {
	assert.Greater(t, defaultChatTimeout, profile.DefaultFetchTimeout)
}

func TestChatAnswersAfterLazyRefreshTimesOut(t *testing.T) {
	hanging := profile.FetcherFunc[profile.GitHub](func(ctx context.Context) (*profile.GitHub, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	refresher := profile.NewRefresher(
		log.NewDiscardLogger(),
		profile.NewStore(time.Hour),
		profile.Sources{GitHub: hanging},
		profile.WithFetchTimeout(80*time.Millisecond),
	)

	svc := echoService()
	svc.processCtx = func(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error) {
		snap := refresher.EnsureFresh(ctx)
		time.Sleep(20 * time.Millisecond)

		text := "Check out GitHub"
		if snap.GitHub != nil {
			text = "GitHub Stats"
		}
		return &chat.ChatResponse{
			Success:  true,
			Response: text,
			Debug:    &chat.Debug{Intent: "github", Method: chat.MethodIntent},
		}, nil
	}

	// The request deadline passes while the slow fetch is still running.
	app := newTestApp(svc, func(h *ChatHandler) { h.chatTimeout = 50 * time.Millisecond })

	status, body := doJSON(t, app, http.MethodPost, "/api/chat", `{"message": "what is his github profile"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Check out GitHub", body["response"])
}

func TestRefreshAndData(t *testing.T) {
	svc := echoService()
	svc.snap = profile.Snapshot{GitHub: &profile.GitHub{Username: "abc", Repos: 5}}
	app := newTestApp(svc)

	status, body := doJSON(t, app, http.MethodPost, "/api/refresh", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"success": true}, body)
	assert.Equal(t, 1, svc.refreshed)

	status, body = doJSON(t, app, http.MethodGet, "/api/data", "")
	assert.Equal(t, http.StatusOK, status)
	cache, ok := body["cache"].(map[string]any)
	require.True(t, ok)
	assert.Nil(t, cache["leetcode"])
	gh, ok := cache["github"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "abc", gh["username"])
}

func TestHealthAndKBInfo(t *testing.T) {
	svc := echoService()
	svc.snap = profile.Snapshot{Medium: &profile.Medium{}}
	app := newTestApp(svc)

	status, body := doJSON(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, map[string]any{"github": false, "leetcode": false, "medium": true, "linkedin": false}, body["data"])

	status, body = doJSON(t, app, http.MethodGet, "/api/kb-info?q=git", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Test Person", body["name"])
	assert.Equal(t, []any{"git"}, body["availableIntents"])
}

func TestStats(t *testing.T) {
	svc := echoService()
	svc.stats = &chat.StatsResponse{Intents: []chat.IntentStat{{Intent: "greeting", Count: 3}}, Total: 3}
	app := newTestApp(svc)

	status, body := doJSON(t, app, http.MethodGet, "/api/chat/stats?hours=2", "")
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 3, body["total"])
	assert.WithinDuration(t, time.Now().Add(-2*time.Hour), svc.since, time.Minute)

	status, _ = doJSON(t, app, http.MethodGet, "/api/chat/stats?hours=9999", "")
	assert.Equal(t, http.StatusBadRequest, status)

	svc.statsErr = chat.ErrChatLogUnavailable
	status, body = doJSON(t, app, http.MethodGet, "/api/chat/stats", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, false, body["success"])
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	resp, err := newTestApp(echoService()).Test(httptest.NewRequest(http.MethodGet, "/api/chat/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestAnswerFrame(t *testing.T) {
	h := New(log.NewDiscardLogger(), validator.New(), middleware.New(log.NewDiscardLogger()), echoService())
	logger := log.NewDiscardLogger().WithField("request_id", "r1")

	ok := h.answerFrame(logger, "r1", []byte(`{"message": "hey"}`))
	assert.True(t, ok.Success)
	assert.Equal(t, "echo: hey", ok.Response)

	bad := h.answerFrame(logger, "r1", []byte(`{"message": 1}`))
	assert.False(t, bad.Success)
	assert.Equal(t, chat.TextInvalidMessage, bad.Response)

	h.chatService = &stubService{process: func(chat.ChatRequest) (*chat.ChatResponse, error) { panic("boom") }}
	recovered := h.answerFrame(logger, "r1", []byte(`{"message": "hey"}`))
	assert.Equal(t, &chat.ChatResponse{Success: false, Response: fallbackText}, recovered)
}

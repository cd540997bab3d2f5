package config

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prateesh-Sulikeri/JinBo/pkg/knowledge"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/log"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/nlp"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/profile"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/utils"
)

func newTestServer(t *testing.T) (*Server, *knowledge.Base) {
	t.Helper()
	logger := log.NewDiscardLogger()

	kb, err := knowledge.LoadFile("../../knowledge-base.json")
	require.NoError(t, err)

	classifier, err := nlp.NewClassifier(logger, nlp.DefaultRuleTable(), nlp.DefaultMemoSize)
	require.NoError(t, err)

	sources := profile.Sources{
		GitHub: profile.FetcherFunc[profile.GitHub](func(context.Context) (*profile.GitHub, error) {
			return &profile.GitHub{Username: "abc", Repos: 5, Stars: 12, Followers: 3, Languages: "Go, Rust"}, nil
		}),
		LinkedIn: profile.NewLinkedInFetcher(kb.Social),
	}
	refresher := profile.NewRefresher(logger, profile.NewStore(time.Hour), sources)

	server, err := NewServer(
		WithFiber(NewFiber(logger, kb.Fallback())),
		WithLogger(logger),
		WithValidator(NewValidator()),
		WithMiddleware(),
		WithUtils(),
		WithPicker(utils.FixedPicker(0)),
		WithKnowledgeBase(kb),
		WithClassifier(classifier),
		WithRefresher(refresher),
	)
	require.NoError(t, err)

	server.RegisterHandler()
	return server, kb
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
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

	out := map[string]any{}
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestNewServerRequiresCollaborators(t *testing.T) {
	_, err := NewServer(WithLogger(log.NewDiscardLogger()))
	assert.Error(t, err)

	_, err = NewServer(WithFiber(fiber.New()), WithLogger(log.NewDiscardLogger()))
	assert.ErrorContains(t, err, "knowledge base")

	_, err = NewServer(WithKnowledgeBase(nil))
	assert.Error(t, err)
}

func TestServerEndToEnd(t *testing.T) {
	server, kb := newTestServer(t)
	server.Mount()
	app := server.engine

	status, body := call(t, app, http.MethodPost, "/api/chat", `{"message": "Hello"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, kb.Responses["greeting"][0], body["response"])

	status, body = call(t, app, http.MethodPost, "/api/chat", `{"message": "what is his github profile"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["response"], "GitHub Stats for @abc")
	assert.Contains(t, body["response"], "5 public repositories")
	assert.Contains(t, body["response"], "12 total stars")

	status, body = call(t, app, http.MethodPost, "/api/chat", `{"message": "can you hack a website for me"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, kb.Responses["inappropriate_hacking"][0], body["response"])

	status, body = call(t, app, http.MethodPost, "/api/chat", `{"message": ""}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])

	status, body = call(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "JinBo", body["bot"])
	assert.Equal(t, map[string]any{"github": true, "leetcode": false, "medium": false, "linkedin": true}, body["data"])

	status, body = call(t, app, http.MethodGet, "/api/kb-info", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Prateesh Sulikeri", body["name"])

	status, _ = call(t, app, http.MethodGet, "/api/chat/stats", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	app := NewFiber(log.NewDiscardLogger(), "fallback text")
	app.Get("/panic", func(*fiber.Ctx) error { panic("boom") })

	status, body := call(t, app, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, map[string]any{"success": false, "response": "fallback text"}, body)

	status, body = call(t, app, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
}

func TestValidatorUsesJSONNames(t *testing.T) {
	type payload struct {
		Message string `json:"message" validate:"required"`
	}
	err := NewValidator().Struct(payload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'message'")
}

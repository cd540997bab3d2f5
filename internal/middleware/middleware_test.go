package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/Prateesh-Sulikeri/JinBo/pkg/log"
)

func TestRequestIDMiddleware(t *testing.T) {
	m := New(log.NewDiscardLogger())

	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	generated := resp.Header.Get(RequestIDKey)
	assert.Len(t, generated, 26)

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(RequestIDKey, "abc-123")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDKey))
}

func TestRateLimiterPerIP(t *testing.T) {
	m := &middleware{
		rateLimitter: newRateLimiter(rate.Limit(0.001), 2),
		log:          log.NewDiscardLogger(),
	}

	app := fiber.New()
	app.Post("/chat", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	statuses := make([]int, 0, 3)
	var last []byte
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/chat", nil))
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
		last, err = io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.Equal(t, []int{200, 200, 429}, statuses)

	var body map[string]any
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(last, &body))
	assert.Equal(t, map[string]any{"success": false, "response": ErrTooManyRequests.Error()}, body)
}

func TestGetLimiterFromReusesBucket(t *testing.T) {
	r := newRateLimiter(1, 1)
	assert.Same(t, r.GetLimiterFrom("1.2.3.4"), r.GetLimiterFrom("1.2.3.4"))
	assert.NotSame(t, r.GetLimiterFrom("1.2.3.4"), r.GetLimiterFrom("5.6.7.8"))
}

func TestSanitizeRequestBody(t *testing.T) {
	assert.Equal(t, `{"message":"[5 chars]"}`, sanitizeRequestBody(`{"message":"héllo"}`))
	assert.Equal(t, `{"api_token":"[SECRET]"}`, sanitizeRequestBody(`{"api_token":"x"}`))
	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody("plain"))
}

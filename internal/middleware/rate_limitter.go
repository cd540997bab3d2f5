package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/Prateesh-Sulikeri/JinBo/pkg/response"
)

// maxTrackedClients bounds the limiter table; the least recently seen IP is
// evicted first.
const maxTrackedClients = 10000

var (
	ErrTooManyRequests = response.NewError(http.StatusTooManyRequests, "You're sending messages too quickly. Please wait a moment and try again.")
)

type rateLimiter struct {
	bucket    *lru.Cache[string, *rate.Limiter]
	rate      rate.Limit
	burstSize int
}

func newRateLimiter(reqRate rate.Limit, burstSize int) *rateLimiter {
	bucket, _ := lru.New[string, *rate.Limiter](maxTrackedClients)
	return &rateLimiter{
		bucket:    bucket,
		rate:      reqRate,
		burstSize: burstSize,
	}
}

func (r *rateLimiter) GetLimiterFrom(ip string) *rate.Limiter {
	if limiter, ok := r.bucket.Get(ip); ok {
		return limiter
	}

	limiter := rate.NewLimiter(r.rate, r.burstSize)
	if prev, ok, _ := r.bucket.PeekOrAdd(ip, limiter); ok {
		return prev
	}
	return limiter
}

func (m *middleware) NewRateLimiter(ctx *fiber.Ctx) error {
	clientIP := ctx.IP()
	limiter := m.rateLimitter.GetLimiterFrom(clientIP)

	if !limiter.Allow() {
		m.log.Warnf("too many requests for IP %s", clientIP)
		return ctx.Status(response.StatusOf(ErrTooManyRequests)).JSON(fiber.Map{
			"success":  false,
			"response": ErrTooManyRequests.Error(),
		})
	}

	return ctx.Next()
}

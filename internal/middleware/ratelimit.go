package middleware

import (
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// AttemptTracker records attempts per client key and counts them inside a
// window.
type AttemptTracker interface {
	Record(client string, at time.Time) error
	CountSince(client string, since time.Time) (int, error)
}

// LoginRateLimit caps how many login requests a client address may issue
// within the window. A tracker failure fails open: throttling is a
// hardening measure, not a correctness one.
func LoginRateLimit(tracker AttemptTracker, limit int, window time.Duration, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			client := ctx.RemoteIP().String()
			now := time.Now()

			count, err := tracker.CountSince(client, now.Add(-window))
			if err != nil {
				logger.Warn("attempt count failed", zap.Error(err))
				next(ctx)
				return
			}
			if count >= limit {
				ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
				return
			}

			if err := tracker.Record(client, now); err != nil {
				logger.Warn("attempt record failed", zap.Error(err))
			}
			next(ctx)
		}
	}
}

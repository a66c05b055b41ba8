package middleware

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskloop/backend/domain"
)

// SessionResolver resolves an opaque cookie token to a live session.
type SessionResolver interface {
	GetSession(ctx context.Context, id string) (*domain.Session, error)
}

// SessionAuth gates protected routes: requests without a live session are
// rejected before the handler runs. The gate injects the authenticated
// identity into request headers and does no business logic itself.
func SessionAuth(sessions SessionResolver, cookieName string, timeout time.Duration, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if cookieName == "" {
		cookieName = "session_id"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			token := string(ctx.Request.Header.Cookie(cookieName))
			if token == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			stdCtx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			session, err := sessions.GetSession(stdCtx, token)
			if err != nil {
				if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
					logger.Warn("session lookup failed", zap.Error(err))
				}
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			ctx.Request.Header.Set("X-User-ID", session.UserID)
			ctx.Request.Header.Set("X-Username", session.Username)
			ctx.Request.Header.Set("X-Email", session.Email)

			next(ctx)
		}
	}
}

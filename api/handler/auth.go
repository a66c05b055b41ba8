package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskloop/backend/api/transport"
	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/pkg/httpcontext"
	authUC "github.com/taskloop/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc         *authUC.UseCase
	cookieName string
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, cookieName string) *AuthHandler {
	if cookieName == "" {
		cookieName = "session_id"
	}
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		cookieName:  cookieName,
	}
}

// @Summary Register a new account
// @Tags auth
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, session, err := h.uc.Register(stdCtx, req.Username, req.Password, req.Email)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.setSessionCookie(ctx, session.ID, session.ExpiresAt)
	h.respondSuccess(ctx, http.StatusCreated, user)
}

// @Summary Log in with username and password
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, session, err := h.uc.Login(stdCtx, req.Username, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.setSessionCookie(ctx, session.ID, session.ExpiresAt)
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Destroy the current session
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	token := string(ctx.Request.Header.Cookie(h.cookieName))

	// The cookie is cleared even when the store delete fails.
	h.clearSessionCookie(ctx)

	if token != "" {
		stdCtx, cancel := h.requestContext(ctx)
		defer cancel()

		if err := h.uc.Logout(stdCtx, token); err != nil {
			h.respondError(ctx, err)
			return
		}
	}

	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Current account, loaded from the user store
// @Tags auth
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(ctx *fasthttp.RequestCtx) {
	token := string(ctx.Request.Header.Cookie(h.cookieName))
	if token == "" {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, session, err := h.uc.CurrentUser(stdCtx, token)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"user":       user,
		"expires_at": session.ExpiresAt,
	})
}

func (h *AuthHandler) setSessionCookie(ctx *fasthttp.RequestCtx, token string, expires time.Time) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(h.cookieName)
	cookie.SetValue(token)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	cookie.SetExpire(expires)

	ctx.Response.Header.SetCookie(cookie)
}

func (h *AuthHandler) clearSessionCookie(ctx *fasthttp.RequestCtx) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(h.cookieName)
	cookie.SetValue("")
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetExpire(fasthttp.CookieExpireDelete)

	ctx.Response.Header.SetCookie(cookie)
}

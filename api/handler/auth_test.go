package handler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/repository"
	authUC "github.com/taskloop/backend/usecase/auth"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by id
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	s.users[user.ID] = user
	return nil
}

type stubSessionRepo struct {
	sessions  map[string]*domain.Session
	deleteErr error
}

func (s *stubSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *stubSessionRepo) Save(_ context.Context, session *domain.Session) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *stubSessionRepo) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.sessions, id)
	return nil
}

func (s *stubSessionRepo) Extend(_ context.Context, id string, ttlSeconds int) error {
	session, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	return nil
}

var (
	_ repository.UserRepository    = (*stubUserRepo)(nil)
	_ repository.SessionRepository = (*stubSessionRepo)(nil)
)

func newTestAuthHandler(users *stubUserRepo, sessions *stubSessionRepo) *AuthHandler {
	uc := authUC.New(users, sessions, nil, time.Hour)
	return NewAuthHandler(uc, nil, nil, "session_id")
}

func sessionCookie(t *testing.T, ctx *fasthttp.RequestCtx) *fasthttp.Cookie {
	t.Helper()
	cookie := fasthttp.AcquireCookie()
	t.Cleanup(func() { fasthttp.ReleaseCookie(cookie) })
	cookie.SetKey("session_id")
	if !ctx.Response.Header.Cookie(cookie) {
		t.Fatal("response carries no session cookie")
	}
	return cookie
}

func TestLogoutClearsCookieOnStoreFailure(t *testing.T) {
	sessions := &stubSessionRepo{
		sessions:  map[string]*domain.Session{"tok": {ID: "tok", UserID: "u1"}},
		deleteErr: errors.New("redis down"),
	}
	h := newTestAuthHandler(&stubUserRepo{users: map[string]*domain.User{}}, sessions)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetCookie("session_id", "tok")
	h.Logout(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusInternalServerError {
		t.Errorf("status = %d, want 500", ctx.Response.StatusCode())
	}
	cookie := sessionCookie(t, ctx)
	if string(cookie.Value()) != "" {
		t.Errorf("cookie value = %q, want empty", cookie.Value())
	}
	if !cookie.Expire().Before(time.Now()) {
		t.Errorf("cookie expiry = %v, want in the past", cookie.Expire())
	}
}

func TestLogout(t *testing.T) {
	sessions := &stubSessionRepo{
		sessions: map[string]*domain.Session{"tok": {ID: "tok", UserID: "u1"}},
	}
	h := newTestAuthHandler(&stubUserRepo{users: map[string]*domain.User{}}, sessions)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetCookie("session_id", "tok")
	h.Logout(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Errorf("status = %d, want 200", ctx.Response.StatusCode())
	}
	if _, ok := sessions.sessions["tok"]; ok {
		t.Error("session survived logout")
	}
	cookie := sessionCookie(t, ctx)
	if !cookie.Expire().Before(time.Now()) {
		t.Errorf("cookie expiry = %v, want in the past", cookie.Expire())
	}
}

func TestMeWithoutCookie(t *testing.T) {
	h := newTestAuthHandler(
		&stubUserRepo{users: map[string]*domain.User{}},
		&stubSessionRepo{sessions: map[string]*domain.Session{}},
	)

	ctx := &fasthttp.RequestCtx{}
	h.Me(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Errorf("status = %d, want 401", ctx.Response.StatusCode())
	}
}

func TestMeServesStoredUser(t *testing.T) {
	users := &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Username: "alice", Email: "a@b.com"},
	}}
	sessions := &stubSessionRepo{sessions: map[string]*domain.Session{
		"tok": {
			ID:        "tok",
			UserID:    "u1",
			Username:  "alice",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}}
	h := newTestAuthHandler(users, sessions)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetCookie("session_id", "tok")
	h.Me(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status = %d, want 200", ctx.Response.StatusCode())
	}
	body := string(ctx.Response.Body())
	if !strings.Contains(body, `"alice"`) || !strings.Contains(body, `"u1"`) {
		t.Errorf("body = %s, want the stored account", body)
	}
}

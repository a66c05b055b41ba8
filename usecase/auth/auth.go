package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/repository"
)

// Cost factor for bcrypt hashing. Fixed so hashes stay comparable across
// deployments.
const bcryptCost = 10

type UseCase struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	logger     *zap.Logger
	sessionTTL time.Duration
}

func New(users repository.UserRepository, sessions repository.SessionRepository, logger *zap.Logger, sessionTTL time.Duration) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &UseCase{
		users:      users,
		sessions:   sessions,
		logger:     logger,
		sessionTTL: sessionTTL,
	}
}

// Register creates an account and opens a session for it. Shape violations
// fail before any store call; a duplicate username surfaces as a CONFLICT
// from the unique constraint.
func (uc *UseCase) Register(ctx context.Context, username, password, email string) (*domain.User, *domain.Session, error) {
	if err := domain.ValidateCredentials(username, password, email); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
	}

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := uc.startSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	uc.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, session, nil
}

// Login verifies credentials and opens a session. Unknown usernames and
// wrong passwords return the same error so callers cannot probe for
// accounts.
func (uc *UseCase) Login(ctx context.Context, username, password string) (*domain.User, *domain.Session, error) {
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := uc.startSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Logout destroys the session. Revoking an unknown session is not an error.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// GetSession resolves a cookie token to a live session. Expired sessions
// are removed and reported as missing. Each successful resolution slides
// the expiry forward by the full TTL; a failed slide is logged but does
// not invalidate the session.
func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}

	if err := uc.sessions.Extend(ctx, sessionID, int(uc.sessionTTL.Seconds())); err != nil {
		uc.logger.Warn("session extend failed", zap.Error(err))
	} else {
		session.ExpiresAt = time.Now().Add(uc.sessionTTL)
	}

	return session, nil
}

// CurrentUser resolves the session and loads the account it belongs to
// from the user store, so the response reflects the stored record rather
// than the snapshot cached at login.
func (uc *UseCase) CurrentUser(ctx context.Context, sessionID string) (*domain.User, *domain.Session, error) {
	session, err := uc.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	user, err := uc.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

func (uc *UseCase) startSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.sessionTTL),
	}

	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

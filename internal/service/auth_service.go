package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"afisha/internal/config"
	"afisha/internal/ids"
	"afisha/internal/models"
	"afisha/internal/repository"
	"afisha/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	GetByID(ctx context.Context, id string) (models.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type SessionCache interface {
	Get(ctx context.Context, id string) (models.Session, bool)
	Set(ctx context.Context, session models.Session)
	Delete(ctx context.Context, id string)
}

type AuthService struct {
	users    UserStore
	sessions SessionStore
	cache    SessionCache
	cfg      *config.AppConfig
	log      zerolog.Logger
}

func NewAuthService(users UserStore, sessions SessionStore, cache SessionCache, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		cache:    cache,
		cfg:      cfg,
		log:      log,
	}
}

// Register creates a user with role "user". It does not log the user in;
// the caller is redirected to the login page next.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("username and password required")
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         models.UserRoleUser,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("username", username).Msg("user registered")
	return nil
}

type LoginResult struct {
	Session models.Session
	Token   string
}

func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return LoginResult{}, ErrInvalidCredentials
	}

	session := models.Session{
		ID:        ids.New(),
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(s.cfg.Session.TTL),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return LoginResult{}, err
	}
	s.cache.Set(ctx, session)

	token, err := security.NewSessionToken(s.cfg.Session.Secret, session.ID, s.cfg.Session.TTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Session: session, Token: token}, nil
}

// SessionFromToken resolves a cookie value into the live session it points
// at, consulting the cache before postgres.
func (s *AuthService) SessionFromToken(ctx context.Context, token string) (models.Session, error) {
	claims, err := security.ParseSessionToken(token, s.cfg.Session.Secret)
	if err != nil {
		return models.Session{}, ErrInvalidCredentials
	}

	if session, ok := s.cache.Get(ctx, claims.SessionID); ok {
		if session.ExpiresAt.After(time.Now()) {
			return session, nil
		}
	}

	session, err := s.sessions.GetByID(ctx, claims.SessionID)
	if err != nil {
		return models.Session{}, ErrInvalidCredentials
	}
	if session.ExpiresAt.Before(time.Now()) {
		_ = s.sessions.DeleteByID(ctx, session.ID)
		s.cache.Delete(ctx, session.ID)
		return models.Session{}, ErrInvalidCredentials
	}

	s.cache.Set(ctx, session)
	return session, nil
}

// Logout drops the session a cookie points at. An unparseable or already
// expired cookie is not an error; logout always succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) {
	claims, err := security.ParseSessionToken(token, s.cfg.Session.Secret)
	if err != nil {
		return
	}

	if err := s.sessions.DeleteByID(ctx, claims.SessionID); err != nil {
		s.log.Warn().Err(err).Msg("delete session failed")
	}
	s.cache.Delete(ctx, claims.SessionID)
}

package auth

import (
	"certportal/internal/cache"
	"certportal/internal/config"
	"certportal/internal/middlewares"
	"certportal/internal/models"
	"context"
	"encoding/gob"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/redis/go-redis/v9"
)

type SessionManager struct {
	*scs.SessionManager
	redis *redis.Client
}

func NewSessionManager(ctx context.Context, logger *slog.Logger, cfg *config.Config) (*SessionManager, error) {
	gob.Register(&models.User{})
	gob.Register(&models.PendingLogin{})
	sessionManager := scs.New()

	var client *redis.Client

	switch cfg.Sessions.Store {
	case SessionStoreMemory:
		sessionManager.Store = memstore.New()
	case SessionStoreRedis:
		client = cache.NewRedisClient(logger, cfg.Redis, cfg.Redis.SessionIndex)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		sessionManager.Store = goredisstore.New(client)
	default:
		return nil, fmt.Errorf("unsupported session store: %s", cfg.Sessions.Store)
	}

	sessionManager.Lifetime = cfg.Sessions.FixedTimeout

	sessionManager.Cookie.Name = cfg.Sessions.Name
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Sessions.Secure
	sessionManager.Cookie.Path = "/"

	logger.Info("session manager initialized", "store", cfg.Sessions.Store, "lifetime", cfg.Sessions.FixedTimeout)

	return &SessionManager{SessionManager: sessionManager, redis: client}, nil
}

// RedisClient returns the session store's client, or nil for the memory store.
func (s *SessionManager) RedisClient() *redis.Client {
	return s.redis
}

func (s *SessionManager) Close() error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

func (s *SessionManager) LoadAndSave(next http.Handler) http.Handler {
	return s.SessionManager.LoadAndSave(next)
}

func (s *SessionManager) setUser(ctx *middlewares.AppContext, user *models.User) {
	s.Put(ctx, string(SessionKeyUserData), user)
}

func (s *SessionManager) getUser(ctx *middlewares.AppContext) (*models.User, bool) {
	user, ok := s.Get(ctx, string(SessionKeyUserData)).(*models.User)
	return user, ok && user != nil
}

func (s *SessionManager) tokenExpiry(ctx *middlewares.AppContext) (time.Time, bool) {
	timestamp := s.GetInt64(ctx, string(SessionKeyTokenExpiry))
	if timestamp == 0 {
		return time.Time{}, false
	}
	return time.Unix(timestamp, 0), true
}

func (s *SessionManager) SetPendingLogin(ctx *middlewares.AppContext, login *models.PendingLogin) {
	s.Put(ctx, string(SessionKeyPendingLogin), login)
}

func (s *SessionManager) PopPendingLogin(ctx *middlewares.AppContext) (*models.PendingLogin, bool) {
	login, ok := s.Pop(ctx, string(SessionKeyPendingLogin)).(*models.PendingLogin)
	return login, ok && login != nil
}

func (s *SessionManager) SetRedirectAfterLogin(ctx *middlewares.AppContext, target string) {
	s.Put(ctx, string(SessionKeyRedirectAfterLogin), target)
}

func (s *SessionManager) PopRedirectAfterLogin(ctx *middlewares.AppContext) string {
	return s.PopString(ctx, string(SessionKeyRedirectAfterLogin))
}

// CreateSessionWithTokenExpiry starts an authenticated session that ends with the ID token.
// The session token is renewed first so a pre-login session id cannot be reused.
func (s *SessionManager) CreateSessionWithTokenExpiry(ctx *middlewares.AppContext, idToken *oidc.IDToken, user *models.User) error {
	now := time.Now()
	if !idToken.Expiry.After(now) {
		return fmt.Errorf("token already expired")
	}

	if err := s.RenewToken(ctx); err != nil {
		return fmt.Errorf("failed to renew session token: %w", err)
	}

	user.LoggedInAt = now

	s.setUser(ctx, user)
	s.Put(ctx, string(SessionKeyTokenExpiry), idToken.Expiry.Unix())

	return nil
}

// IsUserAuthenticated reports whether a user is stored and their ID token has not expired.
func (s *SessionManager) IsUserAuthenticated(ctx *middlewares.AppContext) bool {
	_, ok := s.GetAuthenticatedUser(ctx)
	return ok
}

func (s *SessionManager) GetAuthenticatedUser(ctx *middlewares.AppContext) (*models.User, bool) {
	expiry, ok := s.tokenExpiry(ctx)
	if !ok || !time.Now().Before(expiry) {
		return nil, false
	}

	return s.getUser(ctx)
}

func (s *SessionManager) Logout(ctx *middlewares.AppContext) error {
	return s.Destroy(ctx)
}

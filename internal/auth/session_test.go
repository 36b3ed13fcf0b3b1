package auth

import (
	"certportal/internal/config"
	"certportal/internal/middlewares"
	"certportal/internal/models"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemorySessionManager(t *testing.T) *SessionManager {
	t.Helper()
	cfg := &config.Config{Sessions: config.DefaultSessionConfig}
	sm, err := NewSessionManager(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
	require.NoError(t, err)
	assert.Nil(t, sm.RedisClient())
	return sm
}

// serve runs fn inside a request carrying a loaded session and returns the response.
func serve(t *testing.T, sm *SessionManager, cookie *http.Cookie, fn func(ctx *middlewares.AppContext)) *httptest.ResponseRecorder {
	t.Helper()
	return serveURL(t, sm, cookie, "/", fn)
}

func serveURL(t *testing.T, sm *SessionManager, cookie *http.Cookie, target string, fn func(ctx *middlewares.AppContext)) *httptest.ResponseRecorder {
	t.Helper()

	handler := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fn(&middlewares.AppContext{
			Context:        r.Context(),
			SessionManager: sm,
			Request:        r,
			Response:       w,
		})
	}))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == config.DefaultSessionConfig.Name {
			return c
		}
	}
	return nil
}

func TestNewSessionManager_UnsupportedStore(t *testing.T) {
	cfg := &config.Config{Sessions: config.SessionConfig{Store: "etcd"}}
	_, err := NewSessionManager(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
	assert.ErrorContains(t, err, "unsupported session store")
}

func TestSessionManager_LoginLifecycle(t *testing.T) {
	sm := newMemorySessionManager(t)
	user := &models.User{Sub: "abc", Email: "ops@example.com", ClientID: 3, AccountID: 2}

	rr := serve(t, sm, nil, func(ctx *middlewares.AppContext) {
		assert.False(t, sm.IsUserAuthenticated(ctx))

		token := &oidc.IDToken{Expiry: time.Now().Add(time.Hour)}
		require.NoError(t, sm.CreateSessionWithTokenExpiry(ctx, token, user))
		sm.SetRedirectAfterLogin(ctx, "/cert/latest/x")
	})
	cookie := sessionCookie(rr)
	require.NotNil(t, cookie)

	serve(t, sm, cookie, func(ctx *middlewares.AppContext) {
		got, ok := sm.GetAuthenticatedUser(ctx)
		require.True(t, ok)
		assert.Equal(t, int64(2), got.AccountID)
		assert.False(t, got.LoggedInAt.IsZero())

		assert.Equal(t, "/cert/latest/x", sm.PopRedirectAfterLogin(ctx))
		assert.Equal(t, "", sm.PopRedirectAfterLogin(ctx))

		require.NoError(t, sm.Logout(ctx))
	})

	serve(t, sm, cookie, func(ctx *middlewares.AppContext) {
		_, ok := sm.GetAuthenticatedUser(ctx)
		assert.False(t, ok)
	})
}

func TestSessionManager_ExpiredToken(t *testing.T) {
	sm := newMemorySessionManager(t)

	serve(t, sm, nil, func(ctx *middlewares.AppContext) {
		err := sm.CreateSessionWithTokenExpiry(ctx, &oidc.IDToken{Expiry: time.Now().Add(-time.Minute)}, &models.User{})
		assert.Error(t, err)

		sm.setUser(ctx, &models.User{Sub: "abc"})
		sm.Put(ctx, string(SessionKeyTokenExpiry), time.Now().Add(-time.Second).Unix())
		assert.False(t, sm.IsUserAuthenticated(ctx))

		sm.Put(ctx, string(SessionKeyTokenExpiry), time.Now().Add(time.Minute).Unix())
		assert.True(t, sm.IsUserAuthenticated(ctx))
	})
}

func TestSessionManager_PendingLoginIsSingleUse(t *testing.T) {
	sm := newMemorySessionManager(t)
	login := &models.PendingLogin{State: "state", Nonce: "nonce", CodeVerifier: "verifier", StartedAt: time.Now()}

	rr := serve(t, sm, nil, func(ctx *middlewares.AppContext) {
		sm.SetPendingLogin(ctx, login)
	})

	serve(t, sm, sessionCookie(rr), func(ctx *middlewares.AppContext) {
		got, ok := sm.PopPendingLogin(ctx)
		require.True(t, ok)
		assert.Equal(t, "state", got.State)
		assert.Equal(t, "nonce", got.Nonce)
		assert.Equal(t, "verifier", got.CodeVerifier)

		_, ok = sm.PopPendingLogin(ctx)
		assert.False(t, ok)
	})
}

package middlewares

import (
	"certportal/internal/models"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
)

//go:generate mockgen -source=session_provider.go -destination=../mocks/session.go -package=mocks

// SessionProvider is the session state the portal keeps per browser: the signed-in user,
// a pending authorization request and where to go once it completes.
type SessionProvider interface {
	SetPendingLogin(ctx *AppContext, login *models.PendingLogin)
	// PopPendingLogin returns and forgets the pending login, so a callback can use it once.
	PopPendingLogin(ctx *AppContext) (login *models.PendingLogin, ok bool)
	SetRedirectAfterLogin(ctx *AppContext, target string)
	PopRedirectAfterLogin(ctx *AppContext) string

	CreateSessionWithTokenExpiry(ctx *AppContext, idToken *oidc.IDToken, user *models.User) error
	IsUserAuthenticated(ctx *AppContext) bool
	GetAuthenticatedUser(ctx *AppContext) (user *models.User, ok bool)
	Logout(ctx *AppContext) error

	LoadAndSave(next http.Handler) http.Handler
}

package middlewares

import (
	"certportal/internal/models"
	"net/http"
)

const loginPath = "/api/auth/login"

// RequireAuth rejects API requests without an authenticated session. When no identity
// provider is configured the portal is open and requests pass through.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if !appCtx.AuthEnabled() {
			next.ServeHTTP(w, r)
			return
		}

		appCtx.Request = r
		appCtx.Response = w
		if _, ok := appCtx.SessionManager.GetAuthenticatedUser(appCtx); !ok {
			appCtx.SetJSONError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireLogin sends unauthenticated browsers to the login flow and brings them back to
// the requested URL afterwards.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if !appCtx.AuthEnabled() {
			next.ServeHTTP(w, r)
			return
		}

		appCtx.Request = r
		appCtx.Response = w
		if _, ok := appCtx.SessionManager.GetAuthenticatedUser(appCtx); !ok {
			appCtx.SessionManager.SetRedirectAfterLogin(appCtx, r.URL.RequestURI())
			appCtx.Redirect(loginPath, http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the logged in portal user, if any.
func (ctx *AppContext) CurrentUser() (*models.User, bool) {
	if !ctx.AuthEnabled() || ctx.SessionManager == nil {
		return nil, false
	}
	return ctx.SessionManager.GetAuthenticatedUser(ctx)
}

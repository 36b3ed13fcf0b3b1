package handlers

import (
	"certportal/internal/middlewares"
	"net/http"
	"strings"
)

func GETLoginHandler(ctx *middlewares.AppContext) {
	if ctx.SessionManager.IsUserAuthenticated(ctx) {
		ctx.Logger.Debug("User already authenticated")
		ctx.SetJSONStatus(http.StatusOK, "ok")
		return
	}

	// RequireLogin stores the target before redirecting here; only fall back when it did not.
	redirectTo := ctx.Request.URL.Query().Get("rd")
	if redirectTo != "" {
		if !isLocalPath(redirectTo) {
			ctx.Logger.Debug("Ignoring non-local redirect target", "rd", redirectTo)
			redirectTo = "/"
		}
		ctx.SessionManager.SetRedirectAfterLogin(ctx, redirectTo)
	}

	authURL, err := ctx.OIDCProvider.StartLogin(ctx)
	if err != nil {
		ctx.Logger.Error("Failed to start login", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	ctx.Logger.Debug("Redirecting to OIDC Provider", "url", authURL)

	if strings.Contains(ctx.Request.Header.Get("Accept"), "application/json") {
		ctx.WriteJSON(http.StatusOK, map[string]string{
			"status":       "redirect_required",
			"redirect_url": authURL,
		})
		return
	}

	ctx.Redirect(authURL, http.StatusFound)
}

// isLocalPath accepts absolute paths on this host and rejects scheme-relative URLs.
func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}

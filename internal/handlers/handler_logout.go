package handlers

import (
	"certportal/internal/middlewares"
	"net/http"
	"strings"
	"unicode/utf8"
)

// POSTLogoutHandler destroys the portal session and answers with the signed-out status.
// The identity provider session is left alone.
func POSTLogoutHandler(ctx *middlewares.AppContext) {
	user, signedIn := ctx.SessionManager.GetAuthenticatedUser(ctx)

	if err := ctx.SessionManager.Logout(ctx); err != nil {
		ctx.Logger.Error("Failed to logout user", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Failed to logout")
		return
	}

	if signedIn {
		ctx.Logger.Info("User logged out",
			"sub", user.Sub,
			"email", RedactEmail(user.Email),
			"account_id", user.AccountID,
		)
	}

	ctx.WriteJSON(http.StatusOK, AuthStatusResponse{AuthEnabled: ctx.AuthEnabled()})
}

// RedactEmail keeps the first and last character of the local part for log lines.
func RedactEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || domain == "" || strings.Contains(domain, "@") {
		return ""
	}

	n := utf8.RuneCountInString(local)
	if n <= 2 {
		return strings.Repeat("*", n) + "@" + domain
	}

	runes := []rune(local)
	return string(runes[0]) + strings.Repeat("*", n-2) + string(runes[n-1]) + "@" + domain
}

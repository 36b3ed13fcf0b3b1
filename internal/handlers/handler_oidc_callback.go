package handlers

import (
	"certportal/internal/auth"
	"certportal/internal/middlewares"
	"certportal/internal/storage"
	"errors"
	"net/http"
	"net/url"
)

func GETCallbackHandler(ctx *middlewares.AppContext) {
	if errorParam := ctx.Request.URL.Query().Get("error"); errorParam != "" {
		errorDesc := ctx.Request.URL.Query().Get("error_description")

		ctx.Logger.Warn("OIDC callback error", "error", errorParam, "description", errorDesc)
		ctx.Redirect("/?error="+url.QueryEscape(errorParam), http.StatusFound)
		return
	}

	idToken, user, err := ctx.OIDCProvider.HandleCallback(ctx)
	if err != nil {
		var oidcErr *auth.OIDCError
		if errors.As(err, &oidcErr) {
			ctx.Logger.Warn("Rejected OIDC callback", "code", oidcErr.Code, "error", err)
		} else {
			ctx.Logger.Error("Failed to handle OIDC callback", "error", err)
		}
		ctx.Redirect("/?error=auth_failed", http.StatusFound)
		return
	}

	client, err := ctx.Storage.GetClientByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, storage.ClientNotFoundError) {
			ctx.Logger.Warn("No client registered for user", "email", RedactEmail(user.Email), "sub", user.Sub)
			ctx.Redirect("/?error=unknown_client", http.StatusFound)
			return
		}
		ctx.Logger.Error("Failed to look up client for user", "error", err, "sub", user.Sub)
		ctx.Redirect("/?error=auth_failed", http.StatusFound)
		return
	}

	user.ClientID = client.ID
	user.AccountID = client.AccountID()

	if err := ctx.SessionManager.CreateSessionWithTokenExpiry(ctx, idToken, user); err != nil {
		ctx.Logger.Error("Failed to create session", "error", err, "sub", user.Sub)
		ctx.Redirect("/?error=auth_failed", http.StatusFound)
		return
	}

	ctx.Logger.Info("User successfully authenticated",
		"user_id", user.Sub,
		"username", user.Username,
		"client_id", user.ClientID,
		"account_id", user.AccountID,
	)

	redirectTo := ctx.SessionManager.PopRedirectAfterLogin(ctx)
	if redirectTo != "" {
		ctx.Redirect(redirectTo, http.StatusFound)
		return
	}

	ctx.Redirect("/", http.StatusFound)
}

package auth

import (
	"certportal/internal/config"
	"certportal/internal/middlewares"
	"certportal/internal/models"
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// NewRealOIDCProvider discovers the issuer and builds the OAuth2 client configuration.
func NewRealOIDCProvider(ctx context.Context, cfg config.OIDCConfig) (middlewares.OIDCProvider, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	oauth2Config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     provider.Endpoint(),
		Scopes:       cfg.Scopes,
		RedirectURL:  cfg.RedirectURI,
	}

	return &RealOIDCProvider{
		provider:     provider,
		oauth2Config: oauth2Config,
		now:          time.Now,
	}, nil
}

type RealOIDCProvider struct {
	provider     *oidc.Provider
	oauth2Config *oauth2.Config
	now          func() time.Time
}

func generateRandString(bytes int) string {
	if bytes <= 0 {
		bytes = 32
	}

	b := make([]byte, bytes)
	_, _ = rand.Read(b)

	return base64.RawURLEncoding.EncodeToString(b)
}

// StartLogin stores state, nonce and a PKCE verifier as the session's pending login and
// returns the authorization URL to redirect to.
func (r *RealOIDCProvider) StartLogin(ctx *middlewares.AppContext) (string, error) {
	login := &models.PendingLogin{
		State:        generateRandString(32),
		Nonce:        generateRandString(32),
		CodeVerifier: oauth2.GenerateVerifier(),
		StartedAt:    r.now(),
	}
	ctx.SessionManager.SetPendingLogin(ctx, login)

	authURL := r.oauth2Config.AuthCodeURL(login.State,
		oidc.Nonce(login.Nonce),
		oauth2.S256ChallengeOption(login.CodeVerifier),
	)

	return authURL, nil
}

// HandleCallback consumes the pending login, exchanges the code and verifies the ID token.
func (r *RealOIDCProvider) HandleCallback(ctx *middlewares.AppContext) (*oidc.IDToken, *models.User, error) {
	query := ctx.Request.URL.Query()

	login, ok := ctx.SessionManager.PopPendingLogin(ctx)

	if errorParam := query.Get("error"); errorParam != "" {
		return nil, nil, &OIDCError{Code: errorParam, Description: query.Get("error_description")}
	}

	if !ok {
		return nil, nil, &OIDCError{Code: "invalid_request", Description: "no pending login in session"}
	}
	if r.now().Sub(login.StartedAt) > PendingLoginTTL {
		return nil, nil, &OIDCError{Code: "invalid_request", Description: "login attempt expired"}
	}
	if query.Get("state") != login.State {
		return nil, nil, &OIDCError{Code: "invalid_request", Description: "invalid state parameter"}
	}

	code := query.Get("code")
	if code == "" {
		return nil, nil, &OIDCError{Code: "invalid_request", Description: "no authorization code received"}
	}

	token, err := r.oauth2Config.Exchange(ctx, code, oauth2.VerifierOption(login.CodeVerifier))
	if err != nil {
		return nil, nil, &OIDCError{Code: "invalid_grant", Description: "failed to exchange code for token", Err: err}
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, nil, &OIDCError{Code: "invalid_token", Description: "no id_token found in oauth2 token"}
	}

	verifier := r.provider.Verifier(&oidc.Config{ClientID: r.oauth2Config.ClientID})
	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, nil, &OIDCError{Code: "invalid_token", Description: "failed to verify ID token", Err: err}
	}

	if idToken.Nonce != login.Nonce {
		return nil, nil, &OIDCError{Code: "invalid_token", Description: "nonce in ID token is invalid"}
	}

	user, err := userFromIDToken(idToken)
	if err != nil {
		return nil, nil, &OIDCError{Code: "server_error", Description: "failed to extract user from ID token", Err: err}
	}

	enhancedUser, err := r.fetchUserInfo(ctx, token, user)
	if err != nil {
		ctx.Logger.Warn("failed to fetch user info, using ID token data only", "error", err)
		enhancedUser = user
	}

	return idToken, enhancedUser, nil
}

type userClaims struct {
	Username string `json:"preferred_username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

func userFromIDToken(idToken *oidc.IDToken) (*models.User, error) {
	var claims userClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse ID token claims: %w", err)
	}

	return &models.User{
		Sub:         idToken.Subject,
		Iss:         idToken.Issuer,
		Username:    claims.Username,
		DisplayName: claims.Name,
		Email:       claims.Email,
	}, nil
}

// fetchUserInfo fills gaps in the ID token claims from the UserInfo endpoint.
func (r *RealOIDCProvider) fetchUserInfo(ctx context.Context, token *oauth2.Token, baseUser *models.User) (*models.User, error) {
	userInfo, err := r.provider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}

	var claims userClaims
	if err := userInfo.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse user info claims: %w", err)
	}

	return &models.User{
		Sub:         baseUser.Sub,
		Iss:         baseUser.Iss,
		Username:    getPreferredValue(claims.Username, baseUser.Username),
		DisplayName: getPreferredValue(claims.Name, baseUser.DisplayName),
		Email:       getPreferredValue(userInfo.Email, claims.Email, baseUser.Email),
	}, nil
}

// getPreferredValue returns the first non-empty string from the provided values
func getPreferredValue(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

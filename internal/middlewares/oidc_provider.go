package middlewares

import (
	"certportal/internal/models"

	"github.com/coreos/go-oidc/v3/oidc"
)

//go:generate mockgen -source=oidc_provider.go -destination=../mocks/oidc.go -package=mocks

type OIDCProvider interface {
	// StartLogin records a pending login in the session and returns the authorization URL.
	StartLogin(ctx *AppContext) (string, error)
	HandleCallback(ctx *AppContext) (*oidc.IDToken, *models.User, error)
}

package handlers

import (
	"certportal/internal/middlewares"
	"certportal/internal/models"
	"net/http"
)

type AuthStatusResponse struct {
	AuthEnabled   bool         `json:"auth_enabled"`
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user,omitempty"`
}

func GETAuthStatusHandler(ctx *middlewares.AppContext) {
	response := AuthStatusResponse{
		AuthEnabled: ctx.AuthEnabled(),
	}

	if !response.AuthEnabled {
		ctx.WriteJSON(http.StatusOK, response)
		return
	}

	if user, ok := ctx.SessionManager.GetAuthenticatedUser(ctx); ok {
		response.Authenticated = true
		response.User = user
		ctx.WriteJSON(http.StatusOK, response)
		return
	}

	ctx.WriteJSON(http.StatusUnauthorized, response)
}

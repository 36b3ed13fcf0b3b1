package handlers

import (
	"certportal/internal/middlewares"
	"certportal/internal/version"
	"context"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

type HealthResponse struct {
	Status string            `json:"status"`
	Build  version.Info      `json:"build"`
	Checks map[string]string `json:"checks"`
}

// HandlerHealth pings the database and reports 503 when it is unreachable. Without a
// database the check is skipped.
func HandlerHealth(ctx *middlewares.AppContext) {
	response := HealthResponse{
		Status: "OK",
		Build:  version.GetInfo(),
		Checks: map[string]string{"database": "skipped"},
	}

	if ctx.Storage == nil {
		ctx.WriteJSON(http.StatusOK, response)
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := ctx.Storage.Ping(pingCtx); err != nil {
		ctx.Logger.Error("health check failed", "check", "database", "error", err)
		response.Status = "database unavailable"
		response.Checks["database"] = "down"
		ctx.WriteJSON(http.StatusServiceUnavailable, response)
		return
	}

	response.Checks["database"] = "up"
	ctx.WriteJSON(http.StatusOK, response)
}

package handlers

import (
	"certportal/internal/testutil"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHandlerHealth(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/v1/health")
	defer tc.Finish()

	tc.MockStorage.EXPECT().Ping(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	})

	tc.CallHandler(HandlerHealth)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertContentType(t, "application/json")
	tc.AssertJSONField(t, "status", "OK")
	tc.AssertJSONObject(t, "checks", map[string]any{"database": "up"})

	body := tc.GetJSONResponse(t)
	build, ok := body["build"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "dev", build["version"])
}

func TestHandlerHealth_DatabaseDown(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/v1/health")
	defer tc.Finish()

	tc.MockStorage.EXPECT().Ping(gomock.Any()).Return(errors.New("dial tcp: connection refused"))

	tc.CallHandler(HandlerHealth)

	tc.AssertStatus(t, http.StatusServiceUnavailable)
	tc.AssertJSONField(t, "status", "database unavailable")
	tc.AssertJSONObject(t, "checks", map[string]any{"database": "down"})
	tc.AssertLogContains(t, slog.LevelError, "health check failed")
}

func TestHandlerHealth_WithoutDatabase(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/v1/health")
	defer tc.Finish()
	tc.AppContext.Storage = nil

	tc.CallHandler(HandlerHealth)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONObject(t, "checks", map[string]any{"database": "skipped"})
}

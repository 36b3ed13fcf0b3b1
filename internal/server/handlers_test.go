package server

import (
	"certportal/internal/testutil"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func routeTable(t *testing.T, tc *testutil.TestContext) map[string]bool {
	t.Helper()
	tc.MockSession.EXPECT().LoadAndSave(gomock.Any()).DoAndReturn(func(next http.Handler) http.Handler {
		return next
	}).AnyTimes()

	routes := map[string]bool{}
	err := chi.Walk(setupRouter(tc.AppContext), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)
	return routes
}

func TestSetupRouter_CertificateRoutes(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Finish()

	routes := routeTable(t, tc)

	for _, want := range []string{
		"GET /cert/current/download/{certificateId}",
		"GET /cert/latest/{typeCode}/{subjectId}/{clientId}",
		"GET /certificate/current/download/{certificateId}",
		"GET /certificate/latest/{typeCode}/{subjectId}/{clientId}",
		"GET /cert/latest/qr/{typeCode}/{subjectId}/{clientId}/{sizeCode}/append",
		"GET /cert/latest/qr/{typeCode}/{subjectId}/{clientId}/{sizeCode}/overlay",
		"GET /cert/latest/qr/{typeCode}/{subjectId}/{clientId}/{sizeCode}/{certificateId}/overlay_js",
		"GET /report/barcode",
		"GET /api/v1/health",
		"GET /api/auth/status",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestSetupRouter_AuthRoutesFollowProvider(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		tc := testutil.NewTestContext(t)
		defer tc.Finish()

		routes := routeTable(t, tc)
		assert.False(t, routes["GET /api/auth/login"])
		assert.False(t, routes["POST /api/auth/logout"])
	})

	t.Run("enabled", func(t *testing.T) {
		tc := testutil.NewTestContext(t).WithAuth()
		defer tc.Finish()

		routes := routeTable(t, tc)
		assert.True(t, routes["GET /api/auth/login"])
		assert.True(t, routes["GET /api/auth/callback"])
		assert.True(t, routes["POST /api/auth/logout"])
	})
}

func TestCorsOptions(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Finish()

	cfg := tc.AppContext.Config.CORS
	cfg.AllowedOrigins = []string{"https://portal.example.com"}
	cfg.MaxAgeSeconds = 600

	opts := corsOptions(cfg)
	assert.Equal(t, []string{"https://portal.example.com"}, opts.AllowedOrigins)
	assert.Equal(t, 600, opts.MaxAge)
}

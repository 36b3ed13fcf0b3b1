package testutil

import (
	"certportal/internal/config"
	"certportal/internal/middlewares"
	"certportal/internal/mocks"
	"certportal/internal/models"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// TestContext is an AppContext wired to mocks, a recorded response and a capturing logger.
// Authentication is off until WithAuth installs the mock OIDC provider.
type TestContext struct {
	AppContext     *middlewares.AppContext
	Request        *http.Request
	Response       *httptest.ResponseRecorder
	MockController *gomock.Controller
	MockStorage    *mocks.MockStorageProvider
	MockSession    *mocks.MockSessionProvider
	MockOIDC       *mocks.MockOIDCProvider
	Logs           *TestLogHandler
}

func NewTestContext(t *testing.T) *TestContext {
	return NewTestContextWithURL(t, http.MethodGet, "/")
}

func NewTestContextWithURL(t *testing.T, method, target string) *TestContext {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	ctrl := gomock.NewController(t)
	logs := NewTestLogHandler()

	tc := &TestContext{
		Request:        req,
		Response:       httptest.NewRecorder(),
		MockController: ctrl,
		MockStorage:    mocks.NewMockStorageProvider(ctrl),
		MockSession:    mocks.NewMockSessionProvider(ctrl),
		MockOIDC:       mocks.NewMockOIDCProvider(ctrl),
		Logs:           logs,
	}

	tc.AppContext = &middlewares.AppContext{
		Context:        req.Context(),
		Config:         testConfig(),
		Logger:         slog.New(logs),
		SessionManager: tc.MockSession,
		Storage:        tc.MockStorage,
		Request:        req,
		Response:       tc.Response,
	}

	return tc
}

func testConfig() *config.Config {
	cfg := &config.Config{Delivery: config.DefaultDeliveryConfig}
	cfg.Delivery.SiteURL = "https://certs.example.com"
	cfg.Delivery.Overlay = config.DefaultOverlayConfig
	return cfg
}

func (tc *TestContext) Finish() {
	tc.MockController.Finish()
}

func (tc *TestContext) CallHandler(handler middlewares.AppHandler) {
	handler(tc.AppContext)
}

// WithAuth enables authentication backed by the mock OIDC provider.
func (tc *TestContext) WithAuth() *TestContext {
	tc.AppContext.OIDCProvider = tc.MockOIDC
	return tc
}

// WithURLParams installs a chi route context carrying the given URL parameters.
func (tc *TestContext) WithURLParams(params map[string]string) *TestContext {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return tc.withRequest(tc.Request.WithContext(context.WithValue(tc.Request.Context(), chi.RouteCtxKey, rctx)))
}

func (tc *TestContext) WithQueryParam(key, value string) *TestContext {
	q := tc.Request.URL.Query()
	q.Add(key, value)
	tc.Request.URL.RawQuery = q.Encode()
	return tc
}

func (tc *TestContext) WithHeader(key, value string) *TestContext {
	tc.Request.Header.Set(key, value)
	return tc
}

func (tc *TestContext) withRequest(req *http.Request) *TestContext {
	tc.Request = req
	tc.AppContext.Request = req
	tc.AppContext.Context = req.Context()
	return tc
}

// ExpectAuthenticatedUser stubs the session lookup done by handlers and RequireAuth.
func (tc *TestContext) ExpectAuthenticatedUser(user *models.User, ok bool) *gomock.Call {
	return tc.MockSession.EXPECT().GetAuthenticatedUser(tc.AppContext).Return(user, ok)
}

func (tc *TestContext) AssertStatus(t *testing.T, expected int) {
	t.Helper()
	assert.Equal(t, expected, tc.Response.Code, "status code; body: %s", tc.Response.Body.String())
}

func (tc *TestContext) AssertLocationHeader(t *testing.T, expected string) {
	t.Helper()
	assert.Equal(t, expected, tc.Response.Header().Get("Location"))
}

func (tc *TestContext) AssertContentType(t *testing.T, expected string) {
	t.Helper()
	assert.Equal(t, expected, tc.Response.Header().Get("Content-Type"))
}

func (tc *TestContext) AssertBodyContains(t *testing.T, substr string) {
	t.Helper()
	assert.Contains(t, tc.Response.Body.String(), substr)
}

func (tc *TestContext) AssertLogContains(t *testing.T, level slog.Level, message string) {
	t.Helper()
	assert.True(t, tc.Logs.ContainsMessage(level, message), "expected %s log %q, got %v", level, message, tc.Logs.Messages())
}

// GetJSONResponse decodes the body as a JSON object.
func (tc *TestContext) GetJSONResponse(t *testing.T) map[string]any {
	t.Helper()
	var response map[string]any
	require.NoError(t, json.Unmarshal(tc.Response.Body.Bytes(), &response), "body: %s", tc.Response.Body.String())
	return response
}

// AssertJSONField compares a top-level field; JSON numbers decode as float64.
func (tc *TestContext) AssertJSONField(t *testing.T, field string, expected any) {
	t.Helper()
	response := tc.GetJSONResponse(t)
	require.Contains(t, response, field)
	assert.Equal(t, expected, response[field], "field %s", field)
}

func (tc *TestContext) AssertJSONBool(t *testing.T, field string, expected bool) {
	t.Helper()
	tc.AssertJSONField(t, field, expected)
}

// AssertJSONObject checks the listed keys of a nested object and ignores the rest.
func (tc *TestContext) AssertJSONObject(t *testing.T, field string, expected map[string]any) {
	t.Helper()
	response := tc.GetJSONResponse(t)
	obj, ok := response[field].(map[string]any)
	require.True(t, ok, "expected %s to be an object, got %T", field, response[field])

	for key, want := range expected {
		assert.Equal(t, want, obj[key], "field %s.%s", field, key)
	}
}

package middlewares_test

import (
	"certportal/internal/metrics"
	"certportal/internal/middlewares"
	"certportal/internal/models"
	"certportal/internal/testutil"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

// serveWithAppContext runs h behind the app context middleware built from tc.
func serveWithAppContext(tc *testutil.TestContext, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	middlewares.AppContextMiddleware(tc.AppContext)(h).ServeHTTP(rr, req)
	return rr
}

func TestRequireAuth_PassesThroughWithoutProvider(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Finish()

	rr := serveWithAppContext(tc, middlewares.RequireAuth(okHandler), httptest.NewRequest("GET", "/api/portal/types", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	tc := testutil.NewTestContext(t).WithAuth()
	defer tc.Finish()

	tc.MockSession.EXPECT().GetAuthenticatedUser(gomock.Any()).Return(nil, false)

	rr := serveWithAppContext(tc, middlewares.RequireAuth(okHandler), httptest.NewRequest("GET", "/api/portal/types", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestRequireAuth_AllowsSignedIn(t *testing.T) {
	tc := testutil.NewTestContext(t).WithAuth()
	defer tc.Finish()

	tc.MockSession.EXPECT().GetAuthenticatedUser(gomock.Any()).Return(&models.User{Sub: "abc"}, true)

	rr := serveWithAppContext(tc, middlewares.RequireAuth(okHandler), httptest.NewRequest("GET", "/api/portal/types", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestRequireLogin_RedirectsAndRemembersTarget(t *testing.T) {
	tc := testutil.NewTestContext(t).WithAuth()
	defer tc.Finish()

	tc.MockSession.EXPECT().GetAuthenticatedUser(gomock.Any()).Return(nil, false)
	tc.MockSession.EXPECT().SetRedirectAfterLogin(gomock.Any(), "/cert/latest/qr/gruas/1/2/S?x=1")

	rr := serveWithAppContext(tc, middlewares.RequireLogin(okHandler), httptest.NewRequest("GET", "/cert/latest/qr/gruas/1/2/S?x=1", nil))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/api/auth/login", rr.Header().Get("Location"))
}

func TestRequireAuth_WithoutAppContext(t *testing.T) {
	rr := httptest.NewRecorder()
	middlewares.RequireAuth(okHandler).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  slog.Level
	}{
		{"success", http.StatusOK, slog.LevelInfo},
		{"client error", http.StatusBadRequest, slog.LevelWarn},
		{"server error", http.StatusInternalServerError, slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := testutil.NewTestLogHandler()
			handler := middlewares.RequestLogger(slog.New(logs))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest("GET", "/cert/current/download/1", nil))

			assert.Equal(t, tt.status, rr.Code)
			assert.True(t, logs.ContainsMessage(tt.level, "http request"))
		})
	}
}

func TestWritePDF(t *testing.T) {
	tests := []struct {
		name            string
		write           func(ctx *middlewares.AppContext, filename string, body []byte)
		wantDisposition string
	}{
		{
			name:            "inline",
			write:           (*middlewares.AppContext).WritePDF,
			wantDisposition: `inline; filename="CERT 001-QR.pdf"`,
		},
		{
			name:            "attachment",
			write:           (*middlewares.AppContext).WritePDFAttachment,
			wantDisposition: `attachment; filename="CERT 001-QR.pdf"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := testutil.NewTestContextWithURL(t, "GET", "/cert/current/download/1")
			defer tc.Finish()

			tt.write(tc.AppContext, "CERT 001-QR.pdf", []byte("%PDF-1.4"))

			tc.AssertStatus(t, http.StatusOK)
			tc.AssertContentType(t, "application/pdf")
			assert.Equal(t, tt.wantDisposition, tc.Response.Header().Get("Content-Disposition"))
			assert.Equal(t, "8", tc.Response.Header().Get("Content-Length"))
		})
	}
}

func TestWriteErrorPage_EscapesMessage(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/cert/latest/qr/x")
	defer tc.Finish()

	tc.AppContext.WriteErrorPage(http.StatusBadRequest, `<script>alert("x")</script>`)

	tc.AssertStatus(t, http.StatusBadRequest)
	tc.AssertContentType(t, "text/html; charset=utf-8")
	body := tc.Response.Body.String()
	require.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "Error al cargar el certificado")
}

func TestMetricsMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middlewares.MetricsMiddleware)
	r.Get("/cert/current/download/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.4"))
	})

	before := promtestutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/cert/current/download/{id}", "200"))
	unmatched := promtestutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404"))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/cert/current/download/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nope/42", nil))

	assert.Equal(t, before+1, promtestutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/cert/current/download/{id}", "200")))
	assert.Equal(t, unmatched+1, promtestutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

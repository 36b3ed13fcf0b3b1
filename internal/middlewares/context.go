package middlewares

import (
	"certportal/internal/compositor"
	"certportal/internal/config"
	"certportal/internal/storage"
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
)

type AppContext struct {
	context.Context
	Config         *config.Config
	Logger         *slog.Logger
	SessionManager SessionProvider
	OIDCProvider   OIDCProvider
	Storage        storage.StorageProvider
	Compositor     *compositor.Compositor

	Request  *http.Request
	Response http.ResponseWriter
}

type contextKey string

const appContextKey contextKey = "appContext"

func AppContextMiddleware(baseCtx *AppContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestCtx := &AppContext{
				Context:        r.Context(),
				Config:         baseCtx.Config,
				Logger:         baseCtx.Logger,
				SessionManager: baseCtx.SessionManager,
				OIDCProvider:   baseCtx.OIDCProvider,
				Storage:        baseCtx.Storage,
				Compositor:     baseCtx.Compositor,
				Request:        r,
				Response:       w,
			}

			ctx := context.WithValue(r.Context(), appContextKey, requestCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type AppHandler func(*AppContext)

// Handler converts an AppHandler to an http.Handler
func (ctx *AppContext) Handler(h AppHandler) http.Handler {
	return ctx.HandlerFunc(h)
}

// HandlerFunc converts AppHandler to a http.HandlerFunc
func (ctx *AppContext) HandlerFunc(h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		// later middlewares (compression) may have wrapped the writer
		appCtx.Request = r
		appCtx.Response = w

		h(appCtx)
	}
}

func (ctx *AppContext) Redirect(url string, status int) {
	http.Redirect(ctx.Response, ctx.Request, url, status)
}

func NewAppContext(ctx context.Context, cfg *config.Config, logger *slog.Logger, sessionManager SessionProvider, oidcProvider OIDCProvider, storage storage.StorageProvider, comp *compositor.Compositor) *AppContext {
	return &AppContext{
		Context:        ctx,
		Config:         cfg,
		Logger:         logger,
		SessionManager: sessionManager,
		OIDCProvider:   oidcProvider,
		Storage:        storage,
		Compositor:     comp,
	}
}

func GetAppContext(r *http.Request) *AppContext {
	if ctx, ok := r.Context().Value(appContextKey).(*AppContext); ok {
		return ctx
	}

	return nil
}

// AuthEnabled reports whether an identity provider is configured.
func (ctx *AppContext) AuthEnabled() bool {
	return ctx.OIDCProvider != nil
}

func (ctx *AppContext) WriteJSON(status int, data interface{}) {
	ctx.Response.Header().Set("Content-Type", "application/json")
	ctx.Response.WriteHeader(status)
	if err := json.NewEncoder(ctx.Response).Encode(data); err != nil {
		ctx.Logger.Error("failed to marshal json", "error", err)
	}
}

func (ctx *AppContext) WriteText(status int, text string) {
	ctx.Response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	ctx.Response.WriteHeader(status)
	if _, err := ctx.Response.Write([]byte(text)); err != nil {
		ctx.Logger.Error("failed to write response", "error", err)
	}
}

// WritePDF sends a PDF for inline display under the given filename.
func (ctx *AppContext) WritePDF(filename string, body []byte) {
	ctx.writePDF("inline", filename, body)
}

// WritePDFAttachment sends a PDF the browser should save rather than display.
func (ctx *AppContext) WritePDFAttachment(filename string, body []byte) {
	ctx.writePDF("attachment", filename, body)
}

func (ctx *AppContext) writePDF(disposition, filename string, body []byte) {
	header := ctx.Response.Header()
	header.Set("Content-Type", "application/pdf")
	header.Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": filename}))
	header.Set("Content-Length", strconv.Itoa(len(body)))
	ctx.Response.WriteHeader(http.StatusOK)
	if _, err := ctx.Response.Write(body); err != nil {
		ctx.Logger.Error("failed to write pdf", "error", err, "filename", filename)
	}
}

// WriteImage sends raw image bytes with the given content type.
func (ctx *AppContext) WriteImage(contentType string, body []byte) {
	header := ctx.Response.Header()
	header.Set("Content-Type", contentType)
	header.Set("Content-Length", strconv.Itoa(len(body)))
	ctx.Response.WriteHeader(http.StatusOK)
	if _, err := ctx.Response.Write(body); err != nil {
		ctx.Logger.Error("failed to write image", "error", err)
	}
}

// WriteErrorPage renders the HTML error page. The message is escaped.
func (ctx *AppContext) WriteErrorPage(status int, message string) {
	ctx.WriteHTML(status, errorPageTemplate, errorPageData{
		Title:   errorPageTitle,
		Message: message,
	})
}

func (ctx *AppContext) SetJSONError(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"error": message,
	})
}

func (ctx *AppContext) SetJSONStatus(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"status": message,
	})
}

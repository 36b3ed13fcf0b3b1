package server

import (
	"certportal/internal/config"
	"certportal/internal/handlers"
	"certportal/internal/middlewares"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func setupRouter(ctx *middlewares.AppContext) *chi.Mux {
	r := chi.NewRouter()

	// validated at config load
	trustedProxies, _ := config.ParseTrustedProxies(ctx.Config.Server.TrustedProxies)

	r.Use(middleware.RequestID)
	r.Use(middlewares.ClientIP(trustedProxies))
	r.Use(middlewares.RequestLogger(ctx.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewares.MetricsMiddleware)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(ctx.SessionManager.LoadAndSave)

	r.Use(middlewares.AppContextMiddleware(ctx))

	r.Use(cors.Handler(corsOptions(ctx.Config.CORS)))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5))
		mountFrontend(r, ctx.Config.Server.AssetsDir)
		r.Route("/api", func(r chi.Router) {
			mountAPIRoutes(ctx, r)
		})
	})

	// PDFs and rasters are already compressed.
	r.Route("/cert", func(r chi.Router) {
		mountDownloadRoutes(ctx, r)

		r.Route("/latest/qr/{typeCode}/{subjectId}/{clientId}/{sizeCode}", func(r chi.Router) {
			r.Use(middlewares.RequireLogin)
			mountQRRoutes(ctx, r)
			r.Route("/{certificateId}", func(r chi.Router) {
				mountQRRoutes(ctx, r)
			})
		})
	})

	// Legacy prefix still printed on older certificates.
	r.Route("/certificate", func(r chi.Router) {
		mountDownloadRoutes(ctx, r)
	})

	r.Get(ctx.Config.Delivery.Overlay.RasterPath, ctx.HandlerFunc(handlers.GETBarcode))

	return r
}

func corsOptions(cfg config.CORSConfig) cors.Options {
	return cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAgeSeconds,
	}
}

// mountFrontend serves the built portal UI and falls back to index.html for client routes.
func mountFrontend(r chi.Router, assetsDir string) {
	webRoot := filepath.Dir(assetsDir)

	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(assetsDir))))
	r.Handle("/favicon.ico", http.FileServer(http.Dir(webRoot)))
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(webRoot, "index.html"))
	})
}

func mountAPIRoutes(ctx *middlewares.AppContext, r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Get("/status", ctx.HandlerFunc(handlers.GETAuthStatusHandler))
		if ctx.AuthEnabled() {
			r.Get("/login", ctx.HandlerFunc(handlers.GETLoginHandler))
			r.Get("/callback", ctx.HandlerFunc(handlers.GETCallbackHandler))
			r.Post("/logout", ctx.HandlerFunc(handlers.POSTLogoutHandler))
		}
	})

	r.Route("/portal", func(r chi.Router) {
		r.Use(middlewares.RequireAuth)
		r.Get("/types", ctx.HandlerFunc(handlers.GETDocumentTypes))
		r.Get("/types/{typeCode}/subjects", ctx.HandlerFunc(handlers.GETSubjects))
		r.Get("/types/{typeCode}/subjects/{subjectId}", ctx.HandlerFunc(handlers.GETSubjectDetail))
	})

	r.Get("/v1/health", ctx.HandlerFunc(handlers.HandlerHealth))
}

func mountDownloadRoutes(ctx *middlewares.AppContext, r chi.Router) {
	r.Get("/current/download/{certificateId}", ctx.HandlerFunc(handlers.GETCurrentDownload))
	r.Get("/latest/{typeCode}/{subjectId}/{clientId}", ctx.HandlerFunc(handlers.GETLatestDownload))
}

func mountQRRoutes(ctx *middlewares.AppContext, r chi.Router) {
	r.Get("/", ctx.HandlerFunc(handlers.GETCertQROnly))
	r.Get("/append", ctx.HandlerFunc(handlers.GETCertAppend))
	r.Get("/overlay", ctx.HandlerFunc(handlers.GETCertOverlay))
	r.Get("/overlay_js", ctx.HandlerFunc(handlers.GETCertOverlayJS))
}

func setupDebugRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/debug", middleware.Profiler())

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

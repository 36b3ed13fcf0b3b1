package server

import (
	"certportal/internal/auth"
	"certportal/internal/cache"
	"certportal/internal/compositor"
	"certportal/internal/config"
	"certportal/internal/metrics"
	"certportal/internal/middlewares"
	"certportal/internal/qr"
	"certportal/internal/storage"
	"certportal/internal/version"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/extra/redisprometheus/v9"
	"github.com/redis/go-redis/v9"
)

type redisBacked interface {
	Client() *redis.Client
}

type Server struct {
	cfg            *config.Config
	logger         *slog.Logger
	appCtx         *middlewares.AppContext
	httpServer     *http.Server
	debugServer    *http.Server
	sessionManager *auth.SessionManager
	database       *storage.DatabaseProvider
	cacheProvider  cache.CacheProvider
	cancel         context.CancelFunc
}

// teardown holds the cleanups of partially initialized resources. They run in reverse
// order of registration.
type teardown []func()

func (t *teardown) add(f func()) {
	*t = append(*t, f)
}

func (t teardown) run() {
	for i := len(t) - 1; i >= 0; i-- {
		t[i]()
	}
}

func New(cfg *config.Config) (_ *Server, err error) {
	logger := SetupLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())

	var cleanup teardown
	cleanup.add(cancel)
	defer func() {
		if err != nil {
			cleanup.run()
		}
	}()

	sessionManager, err := auth.NewSessionManager(ctx, logger, cfg)
	if err != nil {
		return nil, err
	}
	cleanup.add(func() {
		if err := sessionManager.Close(); err != nil {
			logger.Warn("failed to close session store", "error", err)
		}
	})

	var oidcProvider middlewares.OIDCProvider
	if cfg.OIDC != nil {
		oidcProvider, err = auth.NewRealOIDCProvider(ctx, *cfg.OIDC)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize oidc provider: %w", err)
		}
		logger.Info("oidc authentication enabled", "issuer", cfg.OIDC.IssuerURL)
	} else {
		logger.Warn("oidc is not configured, portal routes are public")
	}

	database, err := storage.NewDatabaseProvider(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize database provider", "error", err)
		return nil, err
	}
	cleanup.add(database.Close)

	if cfg.Storage.RunMigrations {
		logger.Debug("Running database migrations")
		if err := database.RunMigrations(ctx); err != nil {
			logger.Error("failed to run database migrations", "error", err)
			return nil, err
		}
		logger.Debug("Database Migrations Completed")
	}

	cacheProvider, err := cache.NewCacheProvider(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize cache provider", "error", err)
		return nil, err
	}

	catalog := cache.NewCatalog(database, cacheProvider, cfg.Cache.TTL, logger)
	if cfg.Storage.RunMigrations {
		catalog.Invalidate(ctx)
	}
	logger.Info("document type cache initialized", "type", cfg.Cache.Type, "ttl", cfg.Cache.TTL)

	comp := NewCompositor(cfg.Delivery.Overlay, logger)

	registerCollectors(cfg, sessionManager, cacheProvider, logger)

	appCtx := middlewares.NewAppContext(ctx, cfg, logger, sessionManager, oidcProvider, catalog, comp)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           setupRouter(appCtx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var debugServer *http.Server
	if cfg.Server.Debug != nil && cfg.Server.Debug.Enabled {
		debugServer = &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Debug.Host, cfg.Server.Debug.Port),
			Handler:           setupDebugRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	return &Server{
		cfg:            cfg,
		logger:         logger,
		appCtx:         appCtx,
		httpServer:     server,
		debugServer:    debugServer,
		sessionManager: sessionManager,
		database:       database,
		cacheProvider:  cacheProvider,
		cancel:         cancel,
	}, nil
}

// NewCompositor wires the QR renderer and the raster source selected by configuration.
func NewCompositor(cfg config.OverlayConfig, logger *slog.Logger) *compositor.Compositor {
	renderer := qr.NewEncoder()

	var fetcher compositor.RasterFetcher
	switch cfg.RasterSource {
	case config.RasterSourceLocal:
		fetcher = compositor.RendererFetcher{Renderer: renderer}
	default:
		fetcher = compositor.NewHTTPFetcher(cfg.FetchTimeout, cfg.RasterPath)
	}

	return compositor.New(renderer, fetcher, compositor.Options{
		Margin:      cfg.Margin,
		RasterScale: cfg.RasterScale,
	}, logger)
}

func registerCollectors(cfg *config.Config, sessionManager *auth.SessionManager, cacheProvider cache.CacheProvider, logger *slog.Logger) {
	if err := prometheus.Register(version.NewCollector()); err != nil {
		logger.Debug("failed to register build info collector: already registered", "error", err)
	}

	if client := sessionManager.RedisClient(); client != nil && cfg.Server.Debug != nil && cfg.Server.Debug.Enabled {
		collector := redisprometheus.NewCollector(metrics.Namespace, "sessions", client)
		if err := prometheus.Register(collector); err != nil {
			logger.Debug("failed to register redis session collector: already registered", "error", err)
		}
	}

	if rc, ok := cacheProvider.(redisBacked); ok && cfg.Server.Debug != nil && cfg.Server.Debug.Enabled {
		collector := redisprometheus.NewCollector(metrics.Namespace, "cache", rc.Client())
		if err := prometheus.Register(collector); err != nil {
			logger.Debug("failed to register redis cache collector: already registered", "error", err)
		}
	}
}

func (s *Server) Start() error {
	go func() {
		s.logger.Info("Server Started", "port", s.cfg.Server.Port, "version", version.GetVersion())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server failed to start", "error", err)
			s.cancel()
		}
	}()

	if s.debugServer != nil {
		go func() {
			s.logger.Info("Metrics server starting", "address", s.debugServer.Addr)
			if err := s.debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("Metrics server failed to start", "error", err)
				s.cancel()
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		s.logger.Info("Shutdown signal received")
	case <-s.appCtx.Done():
		s.logger.Info("Context canceled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	s.logger.Info("Shutting Down Server")

	var shutdownErr error
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
		shutdownErr = err
	}

	if s.debugServer != nil {
		if err := s.debugServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Debug server forced to shutdown", "error", err)
		}
	}

	s.cancel()
	s.database.Close()
	if closer, ok := s.cacheProvider.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.logger.Warn("failed to close cache", "error", err)
		}
	}
	if err := s.sessionManager.Close(); err != nil {
		s.logger.Warn("failed to close session store", "error", err)
	}

	s.logger.Info("Server Exited")
	return shutdownErr
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/AgentOS/desktop/internal/api/http"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/api/ws"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/catalog"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/content"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/session"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/shell"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/window"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/providers/theme"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	handler  http.Handler
	http     *http.Server
	sessions *session.Manager
	tracer   *tracing.Tracer
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewLogger builds the process logger from configuration
func NewLogger(cfg *config.Config) (*logging.Logger, error) {
	base := logging.DefaultConfig()
	if cfg.Logging.Development {
		base = logging.DevelopmentConfig()
	}
	if cfg.Logging.Level != "" {
		base.Level = cfg.Logging.Level
	}
	return logging.New(base)
}

// LoadCatalog reads the catalog directory if one is configured
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Dir == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(cfg.Catalog.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

// ShellOptions maps configuration onto the per-session shell template
func ShellOptions(cfg *config.Config, cat *catalog.Catalog) shell.Options {
	return shell.Options{
		Layout: window.Layout{
			CascadeBase: types.Point{X: cfg.Shell.CascadeBase, Y: cfg.Shell.CascadeBase},
			CascadeStep: cfg.Shell.CascadeStep,
			ZBase:       cfg.Shell.ZBase,
		},
		TopBarHeight: cfg.Shell.TopBarHeight,
		LogoDelay:    cfg.Boot.LogoDelay,
		SkipBoot:     cfg.Boot.Skip,
		Catalog:      cat,
		Content:      content.NewRegistry(),
	}
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing desktop shell server",
		zap.String("addr", cfg.Addr()),
		zap.Bool("boot_skip", cfg.Boot.Skip),
		zap.Duration("logo_delay", cfg.Boot.LogoDelay),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("desktop", logger.Logger)

	cat, err := LoadCatalog(cfg)
	if err != nil {
		tracer.Close()
		return nil, err
	}
	logger.Info("Catalog loaded",
		zap.String("dir", cfg.Catalog.Dir),
		zap.Int("apps", len(cat.Apps())),
		zap.Int("desktop_items", len(cat.Items())),
	)

	palettes := theme.NewClient(theme.Options{
		BaseURL: cfg.Persona.URL,
		Timeout: cfg.Persona.Timeout,
		Retries: cfg.Persona.Retries,
		Logger:  logger.Named("persona"),
		OnFetch: metrics.RecordPersonaFetch,
	})
	if cfg.Persona.URL == "" {
		logger.Info("Persona store not configured, using default palette")
	}

	sessions := session.NewManager(ShellOptions(cfg, cat), palettes, logger).
		WithMetrics(metrics).
		WithLimit(cfg.Shell.MaxSessions)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(middleware.Logger(logger.Named("http")))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig().WithOrigins(cfg.Server.CORSOrigins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := apihttp.NewHandlers(sessions, cat, metrics)
	wsHandler := ws.NewHandler(sessions, metrics, logger.Named("ws"))

	handlers.Register(router)
	router.GET("/sessions/:id/stream", wsHandler.HandleSession)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully")

	handler := compress(router)
	return &Server{
		router:  router,
		handler: handler,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		sessions: sessions,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// compress gzips responses for clients that accept it; upgrade requests
// bypass the wrapper so the connection can be hijacked
func compress(next http.Handler) http.Handler {
	gz := gzhttp.GzipHandler(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			next.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	})
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Sessions returns the session manager
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// Logger returns the server logger
func (s *Server) Logger() *logging.Logger {
	return s.logger
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections, ends every session and flushes logs
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var err error
	if shutdownErr := s.http.Shutdown(ctx); shutdownErr != nil {
		s.logger.Error("HTTP shutdown failed", zap.Error(shutdownErr))
		err = fmt.Errorf("failed to shut down http server: %w", shutdownErr)
	}

	s.sessions.Close()
	s.tracer.Close()
	s.logger.Info("Server stopped")
	_ = s.logger.Sync()
	return err
}

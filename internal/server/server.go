package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/api/http"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/api/middleware"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/api/ws"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/panel"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/profile"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/infrastructure/config"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/infrastructure/logging"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/infrastructure/monitoring"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/infrastructure/terminal"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/infrastructure/tracing"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/shared/paths"
)

// Server wraps the HTTP server and the panel engine behind it
type Server struct {
	router  *gin.Engine
	httpSrv *http.Server
	panel   *panel.Coordinator
	hub     *ws.Hub
	watcher *profile.Watcher
	log     *zap.Logger
}

// NewServer assembles the whole engine: profile registry, session
// spawner, panel coordinator, stream hub, and the HTTP surface in
// front of them.
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	log := logger.Component("server")

	metrics := monitoring.NewMetrics()
	tracer := tracing.New(logger.Logger)

	// Profiles: seeded builtins first, then the user's file on top,
	// then watch the file for edits.
	registry := profile.NewRegistry()
	seeder := profile.NewSeeder(registry, logger.Component("profiles"))
	if err := seeder.Seed(); err != nil {
		return nil, fmt.Errorf("seed profiles: %w", err)
	}
	profilesPath := paths.Expand(cfg.Terminal.ProfilesPath)
	if profilesPath == "" {
		profilesPath = paths.DefaultProfilesPath()
	}
	var watcher *profile.Watcher
	if profilesPath != "" {
		loader := profile.NewLoader(registry, logger.Component("profiles"))
		if err := loader.Load(profilesPath); err != nil {
			log.Warn("profiles file not loaded", zap.String("path", profilesPath), zap.Error(err))
		}
		w, err := profile.NewWatcher(loader, profilesPath, logger.Component("profiles"))
		if err != nil {
			log.Warn("profile watcher unavailable", zap.String("path", profilesPath), zap.Error(err))
		} else {
			watcher = w
		}
	}
	if name := cfg.Terminal.DefaultProfile; name != "" {
		if err := registry.SetDefault(name); err != nil {
			log.Warn("default profile not registered", zap.String("profile", name), zap.Error(err))
		}
	}

	spawner := terminal.NewSpawner(registry, terminal.Config{
		Cols:          cfg.Terminal.Cols,
		Rows:          cfg.Terminal.Rows,
		TranscriptDir: transcriptDir(cfg.Terminal, log),
	}, logger)

	hub := ws.NewHub(logger, metrics)

	coordinator := panel.New(spawner, panel.Options{
		WorkingDir: paths.DefaultWorkingDir(),
		Profile:    cfg.Terminal.DefaultProfile,
		ChdirDelay: cfg.Terminal.StartupChdirDelay,
		Logger:     logger,
		Metrics:    metrics,
		Events:     hub.BroadcastEvent,
		Output:     hub.BroadcastOutput,
	})

	handlers := apihttp.NewHandlers(coordinator, registry)
	wsHandler := ws.NewHandler(hub, coordinator, logger, metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	// Register routes
	router.GET("/health", handlers.Health)

	// Tab management
	router.POST("/tabs", handlers.CreateTab)
	router.GET("/tabs", handlers.ListTabs)
	router.POST("/tabs/:id/select", handlers.SelectTab)
	router.POST("/tabs/next", handlers.NextTab)
	router.POST("/tabs/previous", handlers.PreviousTab)

	// Pane management
	router.DELETE("/sessions/:id", handlers.CloseSession)
	router.POST("/sessions/:id/split", handlers.SplitSession)

	// Drag and drop
	router.POST("/drag", handlers.BeginDrag)
	router.DELETE("/drag", handlers.CancelDrag)
	router.POST("/drop", handlers.Drop)

	// Panel state
	router.POST("/panel/cwd", handlers.UpdateCwd)
	router.POST("/panel/collapse", handlers.Collapse)
	router.GET("/layout", handlers.Layout)
	router.GET("/profiles", handlers.ListProfiles)

	// Streaming and metrics
	router.GET("/stream", wsHandler.HandleConnection)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// The panel opens with one shell already running, so the editor's
	// first snapshot is never empty. A failed spawn is not fatal: the
	// editor can retry through POST /tabs.
	if _, err := coordinator.CreateTab(); err != nil {
		log.Warn("initial tab not created", zap.Error(err))
	}

	httpSrv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		router:  router,
		httpSrv: httpSrv,
		panel:   coordinator,
		hub:     hub,
		watcher: watcher,
		log:     log,
	}, nil
}

// Run starts the stream hub and serves HTTP until Shutdown is called.
func (s *Server) Run() error {
	go s.hub.Run()
	s.log.Info("engine listening", zap.String("addr", s.httpSrv.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, terminates every session, and
// stops the stream hub and profile watcher.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpSrv.Shutdown(ctx)
	s.panel.Shutdown()
	s.hub.Stop()
	if s.watcher != nil {
		if cerr := s.watcher.Close(); cerr != nil {
			s.log.Warn("profile watcher close", zap.Error(cerr))
		}
	}
	s.log.Info("engine stopped")
	return err
}

// transcriptDir resolves where session transcripts land; empty disables
// recording. An unwritable directory disables recording for the run.
func transcriptDir(cfg config.TerminalConfig, log *zap.Logger) string {
	if !cfg.TranscriptsEnabled {
		return ""
	}
	dir := cfg.TranscriptDir
	if dir != "" {
		dir = paths.Expand(dir)
	} else {
		dir = paths.TranscriptDir()
	}
	if err := paths.EnsureDir(dir); err != nil {
		log.Warn("transcript dir unavailable, recording disabled",
			zap.String("dir", dir), zap.Error(err))
		return ""
	}
	return dir
}

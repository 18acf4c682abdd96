package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/1broseidon/foliodesk/internal/activity"
	"github.com/1broseidon/foliodesk/internal/config"
	"github.com/1broseidon/foliodesk/internal/daemon"
	"github.com/1broseidon/foliodesk/internal/desktop"
	"github.com/1broseidon/foliodesk/internal/gallery"
	"github.com/1broseidon/foliodesk/internal/ipc"
	"github.com/1broseidon/foliodesk/internal/metrics"
	"github.com/1broseidon/foliodesk/internal/runtimepath"
)

// session is a desktop store, gallery and activity log wired into a daemon.
type session struct {
	daemon   *daemon.Daemon
	gallery  *gallery.Gallery
	activity *activity.Logger
	backend  string
}

// openSession builds the session described by cfg. An empty backend uses the
// configured gallery backend.
func openSession(cfg *config.Config, logger *slog.Logger, backend string) (*session, error) {
	opts, err := cfg.DesktopOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid desktop catalog: %w", err)
	}
	store := desktop.New(opts)

	lc := cfg.GetLoggingConfig()
	act, err := activity.NewLogger(activity.Config{
		Enabled:       lc.Enabled,
		Level:         activity.ParseLogLevel(lc.Level),
		FilePath:      lc.File,
		MaxSizeMB:     lc.MaxSizeMB,
		MaxFiles:      lc.MaxFiles,
		PreviewLength: lc.PreviewLength,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open activity log: %w", err)
	}

	if backend == "" {
		backend = cfg.Gallery.Backend
	}
	blobs, err := gallery.Open(backend, cfg.GalleryPath())
	if err != nil {
		act.Close()
		return nil, err
	}
	gal := gallery.New(blobs, gallery.Options{
		MaxImageMB:  cfg.Gallery.MaxImageMB,
		WarnTotalMB: cfg.Gallery.WarnTotalMB,
		Logger:      logger,
		OnSaved: func(err error) {
			if err != nil {
				metrics.RecordGallerySaveFailure()
			}
		},
	})

	d := daemon.New(store, gal, daemon.Options{
		Logger:         logger,
		Activity:       act,
		GalleryBackend: backend,
	})
	return &session{daemon: d, gallery: gal, activity: act, backend: backend}, nil
}

func (s *session) close(logger *slog.Logger) {
	if err := s.gallery.Close(); err != nil {
		logger.Warn("failed to close gallery store", "error", err)
	}
	s.activity.Close()
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/foliodesk/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: foliodesk daemon [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the desktop session in the foreground. Clients reach it over")
		fmt.Fprintln(os.Stderr, "the IPC socket in the runtime directory.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	sess, err := openSession(cfg, logger, "")
	if err != nil {
		log.Fatalf("Failed to open desktop session: %v", err)
	}
	defer sess.close(logger)

	ipcServer, err := ipc.NewServer(sess.daemon, logger)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	if pidPath, err := runtimepath.PIDPath(); err == nil {
		if err := os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())+"\n"), 0600); err != nil {
			logger.Warn("failed to write pid file", "path", pidPath, "error", err)
		} else {
			defer os.Remove(pidPath)
		}
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = &http.Server{
			Addr:              cfg.Metrics.Listen,
			Handler:           metrics.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("metrics server listening", "addr", cfg.Metrics.Listen)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("foliodesk daemon started", "socket", ipcServer.SocketPath(), "gallery_backend", sess.backend)
	if err := sess.daemon.Run(ctx); err != nil {
		logger.Error("desktop session failed", "error", err)
	}
	logger.Info("shutting down foliodesk daemon")

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", "error", err)
		}
	}
	return 0
}

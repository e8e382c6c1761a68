package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"timeclock/internal/config"
	"timeclock/internal/logging"
	"timeclock/internal/repository"
	"timeclock/internal/server"
	"timeclock/internal/services"
)

var (
	serveHost            string
	servePort            int
	serveReadTimeout     time.Duration
	serveWriteTimeout    time.Duration
	serveShutdownTimeout time.Duration
	serveStorageBackend  string
	serveStorageDir      string
	serveSQLiteFilename  string
	serveEditedFlagTTL   time.Duration
	serveSeedDefaults    bool
	serveLogLevel        string
	serveLogFormat       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	flags := serveCmd.Flags()
	flags.StringVar(&serveHost, "host", "", "Interface to listen on (default all interfaces)")
	flags.IntVar(&servePort, "port", 5000, "Port to listen on")
	flags.DurationVar(&serveReadTimeout, "read-timeout", 10*time.Second, "HTTP read timeout")
	flags.DurationVar(&serveWriteTimeout, "write-timeout", 30*time.Second, "HTTP write timeout")
	flags.DurationVar(&serveShutdownTimeout, "shutdown-timeout", 10*time.Second, "Grace period for in-flight requests on shutdown")
	flags.StringVar(&serveStorageBackend, "storage-backend", config.StorageBackendJSONFile, "Durable store: jsonfile or sqlite")
	flags.StringVar(&serveStorageDir, "storage-dir", "data", "Directory holding the data files")
	flags.StringVar(&serveSQLiteFilename, "sqlite-filename", "timeclock.db", "Database filename for the sqlite backend")
	flags.DurationVar(&serveEditedFlagTTL, "edited-flag-ttl", 72*time.Hour, "How long an entry stays marked as edited")
	flags.BoolVar(&serveSeedDefaults, "seed-default-users", true, "Ensure the default admin, timekeeper and worker accounts exist")
	flags.StringVar(&serveLogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.StringVar(&serveLogFormat, "log-format", "json", "Log format: json or text")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().LoadWithOverrides(collectOverrides(cmd))
	if err != nil {
		return err
	}

	log := newLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	initSignalHandler(cancel)

	stores, err := config.CreateStores(cfg, log)
	if err != nil {
		return err
	}
	defer stores.Close()

	users := repository.NewUserRepository(stores.Users)
	entries := repository.NewEntryRepository(stores.Entries)
	notes := repository.NewNoteRepository(stores.Notes)
	if err := users.Load(ctx); err != nil {
		return err
	}
	if err := entries.Load(ctx); err != nil {
		return err
	}
	if err := notes.Load(ctx); err != nil {
		return err
	}

	container := services.NewServiceContainer(users, entries, notes, services.NewSystemClock(), cfg.Entries.EditedFlagTTL, log)
	if cfg.Seed.DefaultUsers {
		if err := container.Users.EnsureDefaults(ctx); err != nil {
			return err
		}
	}

	handler := server.NewHandler(container, log)
	engine := server.NewRouter(handler, cfg.Application.LogLevel == "debug")
	srv := server.New(server.Options{
		Addr:            cfg.Address(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, engine, log)

	return srv.Run(ctx)
}

// collectOverrides turns only the flags the caller actually set into
// overrides, so environment variables keep their precedence.
func collectOverrides(cmd *cobra.Command) *config.ConfigOverrides {
	overrides := &config.ConfigOverrides{}
	flags := cmd.Flags()
	if flags.Changed("host") {
		overrides.Host = &serveHost
	}
	if flags.Changed("port") {
		overrides.Port = &servePort
	}
	if flags.Changed("read-timeout") {
		overrides.ReadTimeout = &serveReadTimeout
	}
	if flags.Changed("write-timeout") {
		overrides.WriteTimeout = &serveWriteTimeout
	}
	if flags.Changed("shutdown-timeout") {
		overrides.ShutdownTimeout = &serveShutdownTimeout
	}
	if flags.Changed("storage-backend") {
		overrides.StorageBackend = &serveStorageBackend
	}
	if flags.Changed("storage-dir") {
		overrides.StorageDir = &serveStorageDir
	}
	if flags.Changed("sqlite-filename") {
		overrides.SQLiteFilename = &serveSQLiteFilename
	}
	if flags.Changed("edited-flag-ttl") {
		overrides.EditedFlagTTL = &serveEditedFlagTTL
	}
	if flags.Changed("seed-default-users") {
		overrides.SeedDefaultUsers = &serveSeedDefaults
	}
	if flags.Changed("log-level") {
		overrides.LogLevel = &serveLogLevel
	}
	if flags.Changed("log-format") {
		overrides.LogFormat = &serveLogFormat
	}
	return overrides
}

func newLogger(cfg *config.Config) logging.Logger {
	var level slog.Level
	switch cfg.Application.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Application.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return logging.NewSlogLogger(slog.New(handler))
}

func initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

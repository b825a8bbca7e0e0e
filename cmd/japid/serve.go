package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/artpar/japi"
	"github.com/artpar/japi/adapters/auth"
	"github.com/artpar/japi/adapters/clock"
	"github.com/artpar/japi/adapters/hasher"
	"github.com/artpar/japi/adapters/idgen"
	"github.com/artpar/japi/adapters/memory"
	"github.com/artpar/japi/adapters/metrics"
	"github.com/artpar/japi/adapters/random"
	"github.com/artpar/japi/adapters/sqlite"
	"github.com/artpar/japi/config"
	"github.com/artpar/japi/domain/note"
	"github.com/artpar/japi/ports"
	"github.com/artpar/japi/web"
)

var hotReload bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo server",
	Long: `Start the japid demo server.

Without a config file the server runs on :8080 with an in-memory note
store and a generated admin password (printed to the log). With one, the
file is watched and reloaded on change or SIGHUP.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&hotReload, "hot-reload", true, "enable hot reload of configuration")
}

func runServe(cmd *cobra.Command, args []string) error {
	bootLogger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Default()
	var holder *config.Holder
	if _, err := os.Stat(cfgFile); err == nil {
		holder, err = config.NewHolder(cfgFile, bootLogger)
		if err != nil {
			return err
		}
		cfg = holder.Get()
	} else {
		bootLogger.Info().Str("path", cfgFile).Msg("no config file, using defaults")
	}

	logger := newLogger(cfg.Logging)

	if holder != nil && hotReload {
		holder.OnChange(func(*config.Config) {
			logger.Info().Msg("server and storage settings apply on restart")
		})
		if err := holder.Watch(); err != nil {
			return err
		}
		defer holder.Stop()
	}

	store, closeStore, err := openStore(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	clk := clock.System{}
	ids := idgen.UUID{}
	seedStore(store, ids, clk, logger)

	password := cfg.Auth.AdminPassword
	if password == "" {
		password = random.Hex(16)
		logger.Warn().Str("password", password).
			Msg("auth.admin_password not set, generated a one-off password")
	}
	bc := hasher.NewBcrypt(0)
	adminHash, err := bc.Hash(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	deps := web.Deps{
		Notes:      store,
		Tokens:     auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Hasher:     bc,
		IDs:        ids,
		Clock:      clk,
		AdminEmail: cfg.Auth.AdminEmail,
		AdminHash:  adminHash,
		Logger:     logger,
		Options: japi.Options{
			ResourceType: cfg.Response.ResourceType,
			HideVersion:  cfg.Response.HideVersion,
			Indent:       cfg.Response.Indent,
		},
	}
	if cfg.Metrics.Enabled {
		collector := metrics.New()
		deps.Observer = collector
		deps.Metrics = collector.Handler()
		deps.MetricsPath = cfg.Metrics.Path
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      web.NewHandler(deps).Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("japid listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

func openStore(cfg config.DatabaseConfig, logger zerolog.Logger) (ports.NoteStore, func(), error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := sqlite.Open(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info().Str("dsn", cfg.DSN).Msg("using sqlite note store")
		return sqlite.NewNoteStore(db), func() { db.Close() }, nil
	default:
		logger.Info().Msg("using in-memory note store")
		return memory.NewNoteStore(), func() {}, nil
	}
}

// seedStore inserts a welcome note into an empty store so GET /notes has
// something to show.
func seedStore(store ports.NoteStore, ids ports.IDGenerator, clk ports.Clock, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	existing, err := store.List(ctx)
	if err != nil || len(existing) > 0 {
		return
	}

	n := note.Note{
		ID:        ids.New(),
		Title:     "Welcome",
		Body:      "This note was seeded at first start.",
		CreatedAt: clk.Now().UTC(),
	}
	if err := store.Create(ctx, n); err != nil {
		logger.Warn().Err(err).Msg("seeding welcome note failed")
		return
	}
	logger.Info().Str("id", n.ID).Msg("seeded welcome note")
}

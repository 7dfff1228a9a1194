// Command notekeeper serves the notes HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/and161185/notekeeper/internal/config"
	"github.com/and161185/notekeeper/internal/limiter"
	"github.com/and161185/notekeeper/internal/llm"
	"github.com/and161185/notekeeper/internal/migrate"
	"github.com/and161185/notekeeper/internal/repository/postgres"
	httpserver "github.com/and161185/notekeeper/internal/server/http"
	"github.com/and161185/notekeeper/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	v := config.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "notekeeper",
		Short:         "Notes with folders and AI writing assistance",
		Version:       version + " (" + buildDate + ")",
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	pf.String("dsn", "", "PostgreSQL DSN")
	pf.String("jwt-key", "", "HS256 verification key")
	pf.Bool("log-dev", false, "human-readable development logging")
	_ = v.BindPFlag("dsn", pf.Lookup("dsn"))
	_ = v.BindPFlag("jwt.key", pf.Lookup("jwt-key"))
	_ = v.BindPFlag("log.dev", pf.Lookup("log-dev"))

	root.AddCommand(serveCmd(v, &cfgFile), migrateCmd(v, &cfgFile))
	return root
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func migrateCmd(v *viper.Viper, cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, *cfgFile, false)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Log.Dev)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if err := migrate.Up(cmd.Context(), cfg.DSN); err != nil {
				logger.Error("migrate up", zap.Error(err))
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}

func serveCmd(v *viper.Viper, cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, *cfgFile, true)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	_ = v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}

// serve runs migrations and the HTTP server until SIGINT/SIGTERM.
func serve(cfg *config.Config) error {
	logger, err := newLogger(cfg.Log.Dev)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DSN); err != nil {
		logger.Error("migrate up", zap.Error(err))
		return err
	}

	db, err := postgres.New(ctx, cfg.DSN)
	if err != nil {
		logger.Error("pgxpool.New", zap.Error(err))
		return err
	}
	defer db.Close()

	// Repositories
	folderRepo := postgres.NewFolderRepo(db)
	noteRepo := postgres.NewNoteRepo(db)
	usageRepo := postgres.NewUsageRepo(db)
	userRepo := postgres.NewUserRepo(db)

	ai, err := llm.New(llm.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
		Timeout: cfg.AI.Timeout,
	})
	if err != nil {
		return err
	}

	// Services
	noteSvc := service.NewNoteService(noteRepo, folderRepo)
	folderSvc := service.NewFolderService(folderRepo)
	budget := limiter.NewPG(db.Pool, cfg.AI.Quota.Window, cfg.AI.Quota.Tokens)
	assistSvc := service.NewAssistService(ai, usageRepo, noteSvc, budget)

	if !cfg.Log.Dev {
		gin.SetMode(gin.ReleaseMode)
	}
	app := httpserver.New(noteSvc, folderSvc, assistSvc, userRepo, []byte(cfg.JWT.Key), logger)
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      app.Router(cfg.CORS.Origins),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			logger.Warn("graceful shutdown timed out", zap.Error(err))
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			return err
		}
	}

	logger.Info("shutdown complete")
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"production/cmd"
	httpin "production/internal/adapters/in/http"
	"production/internal/adapters/out/postgres"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "production",
		Short:        "Garment production state engine",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before the environment")

	root.AddCommand(
		newServeCmd(&envFile),
		newMigrateCmd(&envFile),
		newReconcileCmd(&envFile),
	)
	return root
}

func newServeCmd(envFile *string) *cobra.Command {
	var autoMigrate bool

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run scheduled jobs",
		RunE: func(command *cobra.Command, _ []string) error {
			cfg, logger, err := setup(*envFile)
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB(db, logger)

			if autoMigrate {
				if err = postgres.Migrate(command.Context(), db); err != nil {
					return err
				}
			}
			return serve(command.Context(), cfg, db, logger)
		},
	}
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Migrate the schema before serving")
	return serveCmd
}

func newMigrateCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(command *cobra.Command, _ []string) error {
			cfg, logger, err := setup(*envFile)
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB(db, logger)

			if err = postgres.Migrate(command.Context(), db); err != nil {
				return err
			}
			logger.InfoContext(command.Context(), "Schema migrated")
			return nil
		},
	}
}

func newReconcileCmd(envFile *string) *cobra.Command {
	var orderID string

	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Re-run anomaly propagation and state derivation for one or all orders",
		RunE: func(command *cobra.Command, _ []string) error {
			var target *kernel.UUID
			if orderID != "" {
				id, err := kernel.UUIDFromString(orderID)
				if err != nil {
					return fmt.Errorf("invalid --order: %w", err)
				}
				target = &id
			}

			cfg, logger, err := setup(*envFile)
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB(db, logger)

			root := cmd.NewCompositionRoot(cfg, db, logger)
			reconcileCommand, err := commands.NewReconcileOrdersCommand(target)
			if err != nil {
				return err
			}
			result, err := root.CreateReconcileOrdersCommandHandler().Handle(command.Context(), reconcileCommand)
			if err != nil {
				return err
			}
			logger.InfoContext(command.Context(), "Reconciliation finished",
				"checked", result.Checked,
				"corrected", result.Corrected,
			)
			return nil
		},
	}
	reconcileCmd.Flags().StringVar(&orderID, "order", "", "Production order UUID (default: all orders)")
	return reconcileCmd
}

func setup(envFile string) (cmd.Config, *slog.Logger, error) {
	cfg, err := cmd.LoadConfig(envFile)
	if err != nil {
		return cmd.Config{}, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func openDB(cfg cmd.Config) (*gorm.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err = sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
}

func serve(ctx context.Context, cfg cmd.Config, db *gorm.DB, logger *slog.Logger) error {
	root := cmd.NewCompositionRoot(cfg, db, logger)

	server, err := httpin.NewServer(ctx, root.CreateHTTPHandlers(), logger)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	server.Register(e)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort),
		Handler:           httpin.WithCORS(e, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gCtx, "HTTP server listening", "addr", httpServer.Addr)
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.InfoContext(shutdownCtx, "Shutting down HTTP server")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

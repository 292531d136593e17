// Package main provides the faqstudio binary: the questions backend, the
// recent questions panel and the maintenance commands around them.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"faq-studio/internal/core"
	"faq-studio/internal/server"
)

const (
	appName         = "faqstudio"
	shutdownTimeout = 15 * time.Second
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "FAQ backend and recent questions panel",
		Long: `faqstudio stores frequently asked questions behind a small REST API
and serves a panel listing the most recent ones.

Configuration comes from FAQ_* environment variables, optionally loaded
from a .env file in the working directory.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides FAQ_LOG_LEVEL")

	cmd.AddCommand(
		serveCmd(&logLevel),
		migrateCmd(&logLevel),
		restoreCmd(&logLevel),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("%s version %s\n", appName, server.Version)
			},
		},
	)

	return cmd
}

// setup loads configuration and builds the logger, applying the
// --log-level override when given
func setup(logLevel string) (*core.Config, *core.Logger, error) {
	config, err := core.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if logLevel != "" {
		config.Logging.Level = logLevel
	}
	level, err := config.LogLevel()
	if err != nil {
		return nil, nil, err
	}

	return config, core.NewLogger(level), nil
}

func serveCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := setup(*logLevel)
			if err != nil {
				return err
			}

			srv, err := server.New(config, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start(ctx)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
					defer cancel()
					return errors.Join(err, srv.Shutdown(shutdownCtx))
				}
				return nil
			case <-ctx.Done():
				logger.Info("Received shutdown signal")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			return <-errCh
		},
	}
}

func migrateCmd(logLevel *string) *cobra.Command {
	var (
		rollback bool
		status   bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or report questions database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rollback && status {
				return fmt.Errorf("--rollback and --status cannot be combined")
			}

			config, logger, err := setup(*logLevel)
			if err != nil {
				return err
			}
			config.Features.Questions.Enabled = true

			srv, err := server.New(config, logger)
			if err != nil {
				return err
			}
			defer srv.Shutdown(context.Background())

			manager := srv.Questions().GetMigrationManager()
			ctx := cmd.Context()

			switch {
			case rollback:
				return manager.Rollback(ctx)
			case status:
				st, err := manager.Status(ctx)
				if err != nil {
					return err
				}
				pending, err := manager.GetPendingMigrations(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("applied: %d\n", st.AppliedCount)
				fmt.Printf("pending: %d\n", len(pending))
				for _, m := range st.Applied {
					fmt.Printf("  [x] %03d %s\n", m.Version, m.Name)
				}
				for _, m := range pending {
					fmt.Printf("  [ ] %03d %s\n", m.Version, m.Name)
				}
				return nil
			default:
				return manager.Migrate(ctx)
			}
		},
	}

	cmd.Flags().BoolVar(&rollback, "rollback", false, "Roll back the most recently applied migration")
	cmd.Flags().BoolVar(&status, "status", false, "Print applied and pending migrations")
	return cmd
}

func restoreCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Load the JSON backup into the database, keeping existing ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := setup(*logLevel)
			if err != nil {
				return err
			}
			config.Features.Questions.Enabled = true

			srv, err := server.New(config, logger)
			if err != nil {
				return err
			}
			defer srv.Shutdown(context.Background())

			result, err := srv.Questions().Restore(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("inserted: %d, skipped: %d, failed: %d\n", result.Inserted, result.Skipped, result.Failed)
			return nil
		},
	}
}

package cmd

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

	"localstore/internal/adapters/out/docstore"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/seed"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand builds the partnersd CLI.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "partnersd",
		Short:         "Backend for the local store delivery and store partner apps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().String("log-level", "info", "debug, info, warn or error")
	root.PersistentFlags().String("store-backend", "rest", "document store: rest or memory")
	root.PersistentFlags().String("store-seed-file", "", "JSON tree loaded into the memory store")
	_ = v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("store.backend", root.PersistentFlags().Lookup("store-backend"))
	_ = v.BindPFlag("store.seed_file", root.PersistentFlags().Lookup("store-seed-file"))

	root.AddCommand(newServeCommand(v, &cfgFile), newSeedCommand(v, &cfgFile))
	return root
}

func newServeCommand(v *viper.Viper, cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the polling jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(v, *cfgFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().String("port", "8080", "HTTP port")
	_ = v.BindPFlag("http_port", cmd.Flags().Lookup("port"))
	return cmd
}

func serve(ctx context.Context, cfg Config) error {
	logger := newLogger(cfg.LogLevel)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewCompositionRoot(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Failed to close connections", "error", closeErr)
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := app.CreateRouter()
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server started", "port", cfg.HTTPPort)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newSeedCommand(v *viper.Viper, cfgFile *string) *cobra.Command {
	var (
		count    int
		partners []string
		out      string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the document store with fake new orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(v, *cfgFile)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel)

			// Seeding needs only the document store.
			app := &CompositionRoot{cfg: cfg, logger: logger, clock: kernel.SystemClock{}}
			store, err := app.newDocumentStore()
			if err != nil {
				return err
			}

			seeder, err := seed.NewSeeder(store, app.clock, partners, logger)
			if err != nil {
				return err
			}
			bar := progressbar.Default(int64(count), "seeding orders")
			if _, err = seeder.Seed(cmd.Context(), count, bar); err != nil {
				return err
			}
			_ = bar.Finish()

			if m, ok := store.(*docstore.Memory); ok && out != "" {
				return os.WriteFile(out, m.Snapshot("/"), 0o644)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of orders")
	cmd.Flags().StringSliceVar(&partners, "partner", nil, "also deliver the orders to these partners' NewOrders")
	cmd.Flags().StringVar(&out, "out", "", "with the memory store, write the resulting tree to this file")
	return cmd
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}

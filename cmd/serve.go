package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"spamoverflow/internal/api"
	"spamoverflow/internal/api/handler"
	"spamoverflow/internal/config"
	"spamoverflow/internal/ingest"
	"spamoverflow/internal/query"
	"spamoverflow/pkg/logger"
	"spamoverflow/pkg/spamhammer"
	"spamoverflow/pkg/storage"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, strg storage.Storage) func(ctx context.Context) {
	scanner := spamhammer.NewExecClient(cfg.SpamHammer.Command, cfg.SpamHammer.ScanTimeout)

	server := api.NewServer(api.Deps{
		Deps: handler.Deps{
			Ingestor: ingest.New(strg, scanner),
			Querier:  query.New(strg),
		},
	}, api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			stopWebserver := setupServer(ctx, cfg, strg)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}

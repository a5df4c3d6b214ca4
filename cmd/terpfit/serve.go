package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Pranav-Anand04/TerpFit/internal/api"
	"github.com/Pranav-Anand04/TerpFit/internal/auth"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := newApplication(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := app.Close(); err != nil {
				logger.Errorf("shutdown: %v", err)
			}
		}()

		if cfg.Env != "development" {
			gin.SetMode(gin.ReleaseMode)
		}
		srv := &http.Server{
			Addr:         cfg.HTTPAddress,
			Handler:      api.NewRouter(app, auth.NewProvider(cfg, logger)),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Infof("Server running on %s (storage=%s)", cfg.HTTPAddress, cfg.DBType)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			return app.Chat().Run(gctx)
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			logger.Info("Shutting down")
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

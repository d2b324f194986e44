package commands

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthtrack/routers"
	"healthtrack/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing database", zap.Error(err))
			}
		}()

		svc := buildServices(store)
		app := routers.NewApp(cfg, logger, svc)

		if cfg.StatsCron != "" {
			scheduler, err := utils.StartStatsScheduler(cfg.StatsCron, svc.Stats, logger)
			if err != nil {
				return err
			}
			defer scheduler.Stop()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server is running", zap.String("port", cfg.Port), zap.String("prefix", cfg.APIPrefix))
			errCh <- app.Listen(":" + cfg.Port)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, os.ErrClosed) {
			logger.Warn("listener stopped", zap.Error(err))
		}
		return nil
	},
}

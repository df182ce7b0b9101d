package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vzahanych/wx-gateway/internal/config"
	"github.com/vzahanych/wx-gateway/internal/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gateway HTTP server",
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	log.Info("Starting wx-gateway server",
		zap.String("config_path", configPath),
		zap.String("environment", cfg.Environment),
		zap.Bool("telemetry_enabled", cfg.Telemetry.Enabled),
		zap.Int("server_port", cfg.Server.Port))

	srv, err := server.New(cfg, log, tele)
	if err != nil {
		log.Error("Failed to build server", zap.Error(err))
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		log.Error("Server error", zap.Error(err))
		return err
	case <-cmd.Context().Done():
		log.Info("Shutting down server")

		if err := srv.Shutdown(); err != nil {
			log.Error("Error during server shutdown", zap.Error(err))
			return err
		}

		if err := tele.Shutdown(context.Background()); err != nil {
			log.Warn("Error during telemetry shutdown", zap.Error(err))
		}

		log.Info("Server shutdown complete")
		return nil
	}
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lthoerner/imei-info/internal/adapters/restapi"
	"github.com/lthoerner/imei-info/internal/logger"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lookup API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.IMEIInfo.APIKey == "" {
				appLog.Warn("No API key configured; remote lookups will be rejected")
			}

			a, err := buildApp(cmd.Context(), cfg, appLog)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := a.Close(); cerr != nil {
					appLog.Warn("Failed to close resources", "error", cerr)
				}
			}()

			apiServer, err := restapi.NewServer(a.lookup, a.metrics.Gatherer(), appLog, &cfg.Server)
			if err != nil {
				return fmt.Errorf("failed to create API server: %w", err)
			}

			shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
			if err := gracefulShutdown(cmd.Context(), appLog, apiServer, shutdownTimeout); err != nil {
				return err
			}
			appLog.Info("Application shut down gracefully.")
			return nil
		},
	}
	return cmd
}

// gracefulShutdown runs the API server until it fails or the process receives SIGINT/SIGTERM.
func gracefulShutdown(
	parent context.Context,
	log logger.AppLogger,
	apiServer *restapi.Server,
	shutdownTimeout time.Duration,
) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		if errServ := apiServer.Start(); errServ != nil && !errors.Is(errServ, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", errServ)
		}
	}()

	var runErr error
	select {
	case runErr = <-errChan:
		log.Error("Shutting down due to error", "error", runErr)
	case <-ctx.Done():
		log.Info("Shutting down due to OS signal...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}
	return runErr
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flomentum/health-bridge/pkg/bootstrap"
	"github.com/flomentum/health-bridge/pkg/bridge"
	"github.com/flomentum/health-bridge/pkg/infrastructure/sentry"
)

func main() {
	ctx := context.Background()

	svc, err := bootstrap.NewService(ctx, "health-bridge")
	if err != nil {
		os.Stderr.WriteString("bootstrap failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := svc.Logger

	server := &http.Server{
		Addr:    svc.Config.ListenAddr,
		Handler: bridge.NewServer(svc.Provider, logger).Handler(),
	}

	go func() {
		logger.Info("Listening", "addr", svc.Config.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
	sentry.Flush(2 * time.Second)
}

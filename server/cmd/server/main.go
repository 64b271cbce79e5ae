package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/skirmish/logging"
	"github.com/automoto/skirmish/server"
	"go.uber.org/zap"
)

func main() {
	addr := flag.String("addr", ":7373", "Listen address")
	logFile := flag.String("log-file", "", "Log file (empty = stderr)")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	logger, err := logging.New(logging.Config{Level: *logLevel, File: *logFile})
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	relay := server.NewRelay(logger)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           relay.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		logger.Info("shutting down relay")
		relay.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("relay started", zap.String("addr", *addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("relay stopped", zap.Error(err))
	}
	<-stopped
}

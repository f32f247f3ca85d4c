package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "opticrm/internal/config"
	intdb "opticrm/internal/db"
	router "opticrm/internal/http"
	"opticrm/internal/utils"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "opticrm: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	env, err := intconfig.LoadEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := utils.NewLogger(env.LogLevel, env.Environment)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	conn, err := intconfig.OpenDB(ctx, env)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer conn.Close()

	if env.BootstrapSchema {
		if err := intdb.EnsureSchema(ctx, conn, intdb.Dialect(env.DBDriver)); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
		log.Info("schema ready", zap.String("driver", env.DBDriver))
	}

	r := router.NewRouter(env, conn, log)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", env.AppAddr), zap.String("environment", env.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), env.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

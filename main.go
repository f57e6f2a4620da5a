package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	v1 "jnmoveis/api/v1"
	"jnmoveis/internal/bootstrap"
	"jnmoveis/internal/config"
	"jnmoveis/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("❌ Erreur configuration: %v", err)
	}
	logger := logging.New(cfg.Log.Level, logging.Format(cfg.Log.Format), os.Stderr)
	slog.SetDefault(logger)
	if !cfg.EnvFileLoaded {
		logger.Debug("no .env file found, using environment and defaults")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// serve démarre le tableau de bord HTTP et s'arrête proprement à l'annulation de ctx
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	if debugLevel(cfg.Log.Level) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           v1.NewRouter(app.Handlers(), app.Metrics, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTP.Addr, "store", cfg.Store.Driver, "assistant", app.Agent != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// debugLevel vrai quand le niveau de log demandé est debug
func debugLevel(level string) bool {
	return logging.ParseLevel(level) == slog.LevelDebug
}

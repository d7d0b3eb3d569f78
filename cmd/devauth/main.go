// Command devauth serves a local stand-in for the remote auth and bills
// payment services, with the demo account already registered.
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

	"github.com/ewbmobile/hybrid-shell/internal/devauth"
	"github.com/ewbmobile/hybrid-shell/internal/infrastructure/config"
	"github.com/ewbmobile/hybrid-shell/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadDevAuth(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env != "production", Service: "devauth"})

	store := devauth.NewMemoryStore()
	svc := devauth.NewAuthService(store, store, cfg.JWTSecret, cfg.TokenTTL)
	if err := svc.SeedDemo(ctx); err != nil {
		return err
	}
	log.Info().Str("email", devauth.DemoEmail).Msg("demo account ready")

	e := devauth.NewRouter(svc, cfg.JWTSecret, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("devauth listening")
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

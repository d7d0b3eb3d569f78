// Command shell runs the hybrid shell core: session, content views and the
// local API the UI host talks to.
//
//	@title			Hybrid Shell API
//	@version		1.0
//	@description	Local API for the EWB Mobile hybrid shell.
//	@BasePath		/
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

	"github.com/rs/zerolog"

	_ "github.com/ewbmobile/hybrid-shell/docs"
	"github.com/ewbmobile/hybrid-shell/internal/api"
	"github.com/ewbmobile/hybrid-shell/internal/api/metrics"
	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
	"github.com/ewbmobile/hybrid-shell/internal/core/ports"
	"github.com/ewbmobile/hybrid-shell/internal/core/service"
	"github.com/ewbmobile/hybrid-shell/internal/infrastructure/config"
	"github.com/ewbmobile/hybrid-shell/internal/infrastructure/db/memory"
	mongostore "github.com/ewbmobile/hybrid-shell/internal/infrastructure/db/mongo"
	redisstore "github.com/ewbmobile/hybrid-shell/internal/infrastructure/db/redis"
	"github.com/ewbmobile/hybrid-shell/internal/infrastructure/opener"
	"github.com/ewbmobile/hybrid-shell/internal/infrastructure/queue"
	"github.com/ewbmobile/hybrid-shell/internal/infrastructure/remote"
	"github.com/ewbmobile/hybrid-shell/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "hybrid-shell",
		Version: cfg.AppVersion,
	})

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	client := remote.NewClient(remote.Config{
		Timeout:   cfg.API.Timeout,
		RetryMax:  cfg.API.RetryMax,
		UserAgent: cfg.UserAgent(),
	})
	gateway := remote.NewAuthGateway(client, cfg.AuthBaseURL())

	var provision ports.ProvisionQueue
	if cfg.Provision.Enabled {
		provisioner := remote.NewProvisioner(client, cfg.BillsPaymentBaseURL(), cfg.API.SeedDemoPath)
		dispatcher := queue.NewDispatcher(cfg.Provision.Workers, cfg.Provision.Timeout, provisioner, metrics.ProvisioningRecorder{}, log.With().Str("component", "provisioning").Logger())
		dispatcher.Start(ctx)
		provision = dispatcher
	}

	sessions := service.NewSessionManager(store, gateway, provision, log.With().Str("component", "session").Logger())
	restored := sessions.Restore(ctx)
	log.Info().Str("state", string(restored.State)).Msg("session restored")

	env := domain.ParseEnvironment(cfg.Env)
	catalog := domain.DefaultCatalog(env)
	shellLog := log.With().Str("component", "shell").Logger()
	shell := service.NewShellController(
		service.NewContentLoader(catalog, domain.DefaultQuickActions()),
		service.NewInjectionBridge(),
		service.NewNavigationGuard(catalog, cfg.DevHost, shellLog),
		sessions,
		newOpener(cfg, log),
		cfg.UserAgent(),
		shellLog,
	)

	e := api.NewRouter(api.Deps{
		Sessions:     sessions,
		Shell:        shell,
		Store:        store,
		StoreBackend: cfg.Store.Backend,
		Log:          log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("env", string(env)).Msg("shell api listening")
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openStore connects the configured credential store backend.
func openStore(ctx context.Context, cfg *config.Config) (ports.CredentialStore, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreRedis:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Store.Redis.Addr, DB: cfg.Store.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewCredentialStore(rdb, cfg.Store.Redis.KeyPrefix), func() { _ = rdb.Close() }, nil
	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Store.Mongo.URI,
			Database: cfg.Store.Mongo.Database,
			AppName:  "hybrid-shell",
		})
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}
		return mongostore.NewCredentialStore(db, cfg.Store.Mongo.Collection, "session"), closeFn, nil
	default:
		return memory.NewCredentialStore(), func() {}, nil
	}
}

func newOpener(cfg *config.Config, log zerolog.Logger) ports.ExternalOpener {
	l := log.With().Str("component", "opener").Logger()
	if cfg.Opener == config.OpenerSystem {
		return opener.NewSystemOpener(l)
	}
	return opener.NewLogOpener(l)
}

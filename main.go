package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/UmangSachdeva/StaffPortal/auth"
	"github.com/UmangSachdeva/StaffPortal/config"
	"github.com/UmangSachdeva/StaffPortal/handlers"
	"github.com/UmangSachdeva/StaffPortal/logging"
	"github.com/UmangSachdeva/StaffPortal/repository"
	"github.com/UmangSachdeva/StaffPortal/router"
	"github.com/UmangSachdeva/StaffPortal/services"
	"github.com/UmangSachdeva/StaffPortal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load Env file
	_ = godotenv.Load(".env")

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error("closing store", "error", err)
		}
	}()

	aclModel, aclPolicy, err := cfg.ACL()
	if err != nil {
		return err
	}
	authz, err := auth.New(aclModel, aclPolicy)
	if err != nil {
		return err
	}

	tokens := utils.NewTokenManager(cfg.SecretKey, cfg.TokenTTL)
	authService := services.NewAuthService(store, tokens, logger)
	staffService := services.NewStaffService(store.Staff, authz, logger)
	transactionService := services.NewTransactionService(store.Transactions, authz, logger, cfg.DefaultCurrency)

	if cfg.SeedAdminUsername != "" {
		if err := staffService.EnsureAdmin(ctx, cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
			return err
		}
	}

	h := handlers.New(transactionService, staffService, authService, store.Health, logger)
	handler := router.New(router.Dependencies{
		Handler:       h,
		Authenticator: authService,
		Config:        cfg,
		Logger:        logger,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", "addr", server.Addr, "store", cfg.Store)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repository.Store, error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		return repository.NewMemoryStore(), nil
	}

	client, err := config.ConnectToMongo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := repository.NewMongoStore(ctx, client, client.Database(cfg.DatabaseName))
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return store, nil
}

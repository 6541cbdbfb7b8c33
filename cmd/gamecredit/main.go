package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kohai/gamecredit/internal/adapter/auth"
	"github.com/kohai/gamecredit/internal/adapter/cache"
	"github.com/kohai/gamecredit/internal/adapter/client/provider"
	"github.com/kohai/gamecredit/internal/adapter/client/solana"
	"github.com/kohai/gamecredit/internal/adapter/config"
	"github.com/kohai/gamecredit/internal/adapter/handler/http"
	"github.com/kohai/gamecredit/internal/adapter/logger"
	"github.com/kohai/gamecredit/internal/adapter/storage"
	"github.com/kohai/gamecredit/internal/adapter/storage/repository"
	"github.com/kohai/gamecredit/internal/adapter/worker"
	"github.com/kohai/gamecredit/internal/core/service"
	"github.com/kohai/gamecredit/internal/core/verifier"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	callbackPath      = "/api/vendor/callback"
	verificationItems = 10_000
)

func main() {
	conf, err := config.NewConfig(os.Args[1:])
	if err != nil {
		fmt.Printf("config error: %s\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(conf.App)
	if err != nil {
		fmt.Printf("error creating log: %s\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(conf, log); err != nil {
		log.Error("gamecredit stopped", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(conf *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	defer db.Close()

	err = db.RunMigrations()
	if err != nil {
		return fmt.Errorf("database migration error: %w", err)
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		return fmt.Errorf("order repo creating error: %w", err)
	}

	tokenService, err := auth.New(conf.Auth)
	if err != nil {
		return fmt.Errorf("token service creating error: %w", err)
	}

	nativeTolerance, tokenTolerance, err := conf.Verification.Tolerances()
	if err != nil {
		return err
	}
	verificationCache := cache.NewVerificationCache(conf.Verification.CacheTTL, verificationItems)
	chain := solana.NewClient(conf.Solana, log.Named("Solana"))
	paymentVerifier := verifier.NewVerifier(chain, verificationCache, verifier.Config{
		SignatureLimit:  conf.Solana.SignatureLimit,
		Attempts:        conf.Verification.Retries,
		RetryDelay:      conf.Verification.RetryDelay,
		NativeTolerance: nativeTolerance,
		TokenTolerance:  tokenTolerance,
	}, log.Named("Verifier"))

	vendor := provider.NewClient(conf.Vendor, log.Named("Vendor"))

	svc, err := service.NewService(repo, repo, paymentVerifier, vendor, service.Config{
		PlatformWallet:     conf.Solana.PlatformWallet,
		TokenMints:         conf.Solana.TokenMints,
		CallbackURL:        strings.TrimRight(conf.HTTP.PublicURL, "/") + callbackPath,
		OrderPrefix:        conf.App.OrderPrefix,
		ValidateAccounts:   conf.Vendor.ValidateAccounts,
		VerifyDelay:        conf.Verification.InitialDelay,
		VerifyMaxAttempts:  conf.Verification.MaxAttempts,
		FulfillMaxAttempts: conf.Vendor.MaxAttempts,
		ReconcileMinAge:    conf.Reconcile.MinAge,
		ReconcileMaxAge:    conf.Reconcile.MaxAge,
		ReconcileBatch:     uint64(conf.Reconcile.BatchSize),
		ReconcileThrottle:  conf.Reconcile.Throttle,
	}, log.Named("Service"))
	if err != nil {
		return fmt.Errorf("order service creating error: %w", err)
	}

	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		return fmt.Errorf("order handler creating error: %w", err)
	}
	catalogHandler, err := http.NewCatalogHandler(svc, log.Named("Catalog handler"))
	if err != nil {
		return fmt.Errorf("catalog handler creating error: %w", err)
	}
	callbackHandler, err := http.NewCallbackHandler(svc, conf.Vendor.CallbackKey, log.Named("Callback handler"))
	if err != nil {
		return fmt.Errorf("callback handler creating error: %w", err)
	}
	adminHandler, err := http.NewAdminHandler(svc, tokenService, log.Named("Admin handler"))
	if err != nil {
		return fmt.Errorf("admin handler creating error: %w", err)
	}

	r, err := http.NewRouter(conf.Auth, tokenService,
		orderHandler, catalogHandler, callbackHandler, adminHandler, log.Named("Router"))
	if err != nil {
		return fmt.Errorf("router creating error: %w", err)
	}

	queued, err := worker.RecallOrders(ctx, repo, repo, worker.Attempts{
		Verify:  conf.Verification.MaxAttempts,
		Fulfill: conf.Vendor.MaxAttempts,
	})
	if err != nil {
		return fmt.Errorf("recall orders error: %w", err)
	}
	log.Info("Orders recalled", zap.Int("queued", queued))

	pool := worker.NewPool(repo, svc, conf.Worker, log.Named("Worker"))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return verificationCache.Run(ctx) })
	g.Go(func() error { return pool.Run(ctx) })
	g.Go(func() error {
		return worker.RunReconciler(ctx, svc, conf.Reconcile.Interval, log.Named("Reconciler"))
	})
	g.Go(func() error { return r.Serve(ctx, conf.HTTP.HostString) })

	return g.Wait()
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"emi-engine/config"
	httpLayer "emi-engine/http"
	"emi-engine/logger"
	"emi-engine/repository"
	"emi-engine/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serves the loan calculator over HTTP:

  POST /loan/calculate       solve for emi, principal, tenure or rate
  POST /loan/schedule        amortization table
  POST /loan/recommend-term  rank tenures by preference
  POST /loan/payoff-plan     snowball / avalanche debt payoff
  GET  /loan/history         recent calculations
  GET  /healthz`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Development: cfg.Log.Development,
		Level:       cfg.Log.Level,
	})
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(cfg.Storage)
	if err != nil {
		return err
	}
	defer closeRepo()

	cache, closeCache, err := openCache(ctx, cfg.Cache, log)
	if err != nil {
		return err
	}
	defer closeCache()

	loanService := service.NewLoanService(repo, cache, log)
	handlers := httpLayer.Handlers{
		Loan:     httpLayer.NewLoanHandler(loanService, log),
		Schedule: httpLayer.NewScheduleHandler(service.NewScheduleService(log), log),
		Term: httpLayer.NewTermRecommendationHandler(
			service.NewTermRecommendationService(loanService, log), log),
		Payoff: httpLayer.NewPayoffHandler(service.NewPayoffService(log), log),
	}

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpLayer.NewRouter(handlers, rateLimiter, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("API listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("storage", cfg.Storage.Driver),
			zap.String("cache", cfg.Cache.Driver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server exited")
	return nil
}

func openRepository(cfg config.StorageConfig) (repository.LoanRepository, func(), error) {
	if cfg.Driver != config.DriverSQLite {
		return repository.NewLoanRepositoryMemory(), func() {}, nil
	}

	repo, err := repository.NewLoanRepositorySQLite(cfg.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open history database: %w", err)
	}
	return repo, func() { repo.Close() }, nil
}

// openCache connects to Redis with exponential backoff so the API can start
// alongside a cache that is still booting.
func openCache(
	ctx context.Context,
	cfg config.CacheConfig,
	log *zap.Logger,
) (repository.CacheRepository, func(), error) {
	if cfg.Driver != config.DriverRedis {
		return repository.NewMockCache(), func() {}, nil
	}

	cache := repository.NewRedisCache(cfg.RedisAddr, cfg.TTL)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxInterval = 5 * time.Second

	notify := func(err error, wait time.Duration) {
		log.Warn("redis not ready, retrying", zap.Error(err), zap.Duration("backoff", wait))
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, cache.Ping(ctx)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(cfg.ConnectRetries)),
		backoff.WithNotify(notify))
	if err != nil {
		cache.Close()
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	return cache, func() { cache.Close() }, nil
}

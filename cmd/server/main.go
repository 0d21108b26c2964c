package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/radkal2/bonusbank/internal/adapter/http"
	"github.com/radkal2/bonusbank/internal/adapter/http/handler"
	postgresRepo "github.com/radkal2/bonusbank/internal/adapter/repository/postgres"
	redisRepo "github.com/radkal2/bonusbank/internal/adapter/repository/redis"
	"github.com/radkal2/bonusbank/internal/infrastructure/auth"
	"github.com/radkal2/bonusbank/internal/infrastructure/config"
	"github.com/radkal2/bonusbank/internal/infrastructure/logger"
	"github.com/radkal2/bonusbank/internal/infrastructure/metrics"
	"github.com/radkal2/bonusbank/internal/infrastructure/postgres"
	"github.com/radkal2/bonusbank/internal/infrastructure/redis"
	"github.com/radkal2/bonusbank/internal/infrastructure/sms"
	"github.com/radkal2/bonusbank/internal/scheduler"
	"github.com/radkal2/bonusbank/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Run database migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		URL:            cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()
	slogger := slog.Default()

	// Background workers stop together on shutdown
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	// SMS delivery worker
	notifier := sms.NewNotifier(sms.Config{
		Gateway:    sms.NewLogGateway(slogger),
		Logger:     slogger,
		Metrics:    appMetrics,
		BufferSize: cfg.SMSBufferSize,
	})
	go func() {
		if err := notifier.Start(workerCtx); err != nil && workerCtx.Err() == nil {
			log.Error().Err(err).Msg("sms notifier stopped")
		}
	}()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	bankRepo := postgresRepo.NewBankRepository(pool)
	branchRepo := postgresRepo.NewBranchRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	loanRepo := postgresRepo.NewLoanRepository(pool)
	installmentRepo := postgresRepo.NewInstallmentRepository(pool)
	statRepo := postgresRepo.NewStatisticRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	jobLock := redisRepo.NewJobLock(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	numberGen := postgresRepo.NewNumberGenerator()
	retrier := postgresRepo.NewRetrier()

	// Initialize use cases
	userUC := usecase.NewUserUseCase(userRepo, statRepo, idGen, notifier)
	branchUC := usecase.NewBranchUseCase(bankRepo, branchRepo, idGen)
	accountUC := usecase.NewAccountUseCase(
		txManager, accountRepo, branchRepo, loanRepo, statRepo, userRepo,
		idGen, numberGen, notifier, appMetrics)
	transactionUC := usecase.NewTransactionUseCase(
		txManager, accountRepo, transactionRepo, statRepo, userRepo,
		idGen, notifier, usecase.TransactionLimits{
			MinAmount:     cfg.MinTransactionAmount,
			MaxAmount:     cfg.MaxTransactionAmount,
			MaxDailyTotal: cfg.MaxDailyTransactions,
			MinBalance:    cfg.MinAccountBalance,
		}, appMetrics)
	loanUC := usecase.NewLoanUseCase(
		txManager, loanRepo, installmentRepo, accountRepo, branchRepo,
		statRepo, userRepo, idGen, notifier, usecase.LoanLimits{
			MinAmount:   cfg.MinLoanAmount,
			MaxAmount:   cfg.MaxLoanAmount,
			AutoDeposit: cfg.LoanAutoDeposit,
		}, appMetrics)
	settlementUC := usecase.NewSettlementUseCase(
		txManager, accountRepo, loanRepo, installmentRepo, statRepo,
		userRepo, notifier, retrier, slogger, cfg.YearlyInterestPercent,
		appMetrics)
	statisticUC := usecase.NewStatisticUseCase(statRepo)

	// Periodic interest and settlement sweeps
	sweeps := scheduler.New(scheduler.Config{
		SettlementUC:       settlementUC,
		JobLock:            jobLock,
		Logger:             slogger,
		InterestInterval:   cfg.InterestInterval,
		SettlementInterval: cfg.SettlementInterval,
		LockTTL:            cfg.JobLockTTL,
	})
	go func() {
		if err := sweeps.Start(workerCtx); err != nil && workerCtx.Err() == nil {
			log.Error().Err(err).Msg("scheduler stopped")
		}
	}()

	// Initialize handlers
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	userHandler := handler.NewUserHandler(userUC, jwtManager)
	accountHandler := handler.NewAccountHandler(accountUC)
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	loanHandler := handler.NewLoanHandler(loanUC)
	branchHandler := handler.NewBranchHandler(branchUC)
	statisticHandler := handler.NewStatisticHandler(statisticUC)
	adminHandler := handler.NewAdminHandler(settlementUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		UserHandler:        userHandler,
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		LoanHandler:        loanHandler,
		BranchHandler:      branchHandler,
		StatisticHandler:   statisticHandler,
		AdminHandler:       adminHandler,
		HealthHandler:      healthHandler,
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		Metrics:            appMetrics,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopWorkers()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

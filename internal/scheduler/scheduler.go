package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/radkal2/bonusbank/internal/usecase"
)

// Job lock names. One lease per job, so only one instance runs a sweep
// at a time.
const (
	interestLock   = "interest_accrual"
	settlementLock = "installment_settlement"
)

// SettlementService defines the periodic sweeps the scheduler drives.
type SettlementService interface {
	AccrueInterest(ctx context.Context) error
	SettleDueInstallments(ctx context.Context) error
	CloseFullyPaidLoans(ctx context.Context) error
}

// Scheduler runs the interest and settlement sweeps on their intervals.
type Scheduler struct {
	settlementUC SettlementService
	jobLock      usecase.JobLock
	logger       *slog.Logger

	interestInterval   time.Duration
	settlementInterval time.Duration
	lockTTL            time.Duration
}

// Config for Scheduler.
type Config struct {
	SettlementUC       SettlementService
	JobLock            usecase.JobLock
	Logger             *slog.Logger
	InterestInterval   time.Duration
	SettlementInterval time.Duration
	LockTTL            time.Duration
}

// New creates a new Scheduler.
func New(cfg Config) *Scheduler {
	if cfg.InterestInterval == 0 {
		cfg.InterestInterval = 24 * time.Hour
	}
	if cfg.SettlementInterval == 0 {
		cfg.SettlementInterval = time.Hour
	}
	if cfg.LockTTL == 0 {
		cfg.LockTTL = 10 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Scheduler{
		settlementUC:       cfg.SettlementUC,
		jobLock:            cfg.JobLock,
		logger:             cfg.Logger,
		interestInterval:   cfg.InterestInterval,
		settlementInterval: cfg.SettlementInterval,
		lockTTL:            cfg.LockTTL,
	}
}

// Start begins both sweep loops.
// It runs continuously until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started",
		slog.Duration("interest_interval", s.interestInterval),
		slog.Duration("settlement_interval", s.settlementInterval))

	interestTicker := time.NewTicker(s.interestInterval)
	defer interestTicker.Stop()

	settlementTicker := time.NewTicker(s.settlementInterval)
	defer settlementTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler shutting down")
			return ctx.Err()
		case <-interestTicker.C:
			s.runLocked(ctx, interestLock, s.runInterest)
		case <-settlementTicker.C:
			s.runLocked(ctx, settlementLock, s.runSettlement)
		}
	}
}

// runLocked runs job under the named lease. A tick that loses the race
// for the lease is skipped, not retried.
func (s *Scheduler) runLocked(ctx context.Context, name string, job func(context.Context) error) {
	acquired, err := s.jobLock.Acquire(ctx, name, s.lockTTL)
	if err != nil {
		s.logger.Error("failed to acquire job lock",
			slog.String("job", name),
			slog.String("error", err.Error()))
		return
	}
	if !acquired {
		s.logger.Debug("job lock held elsewhere, skipping", slog.String("job", name))
		return
	}
	defer func() {
		if err := s.jobLock.Release(ctx, name); err != nil {
			s.logger.Error("failed to release job lock",
				slog.String("job", name),
				slog.String("error", err.Error()))
		}
	}()

	if err := job(ctx); err != nil {
		s.logger.Error("job failed",
			slog.String("job", name),
			slog.String("error", err.Error()))
	}
}

func (s *Scheduler) runInterest(ctx context.Context) error {
	s.logger.Info("running interest accrual")
	return s.settlementUC.AccrueInterest(ctx)
}

// runSettlement settles due installments first, then closes any loans
// whose last installment just cleared.
func (s *Scheduler) runSettlement(ctx context.Context) error {
	s.logger.Info("running installment settlement")
	if err := s.settlementUC.SettleDueInstallments(ctx); err != nil {
		return err
	}
	return s.settlementUC.CloseFullyPaidLoans(ctx)
}

package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/radkal2/bonusbank/internal/domain"
	"github.com/radkal2/bonusbank/internal/infrastructure/metrics"
)

const sweepBatchSize = 1000

// SettlementUseCase is the periodic sweep over the ledger: it accrues daily
// interest on active accounts, settles due installments against debtor
// balances and closes loans whose installments have all cleared. Each entry
// point is idempotent in intent; re-running over already-processed rows is
// a no-op. Every per-row mutation set commits in its own transaction, so one
// bad row never blocks the rest of the sweep.
type SettlementUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	loanRepo        LoanRepository
	installmentRepo InstallmentRepository
	statRepo        StatisticRepository
	userRepo        UserRepository
	notifier        Notifier
	retrier         Retrier
	logger          *slog.Logger
	metrics         *metrics.Metrics

	yearlyInterestPercent int64
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	loanRepo LoanRepository,
	installmentRepo InstallmentRepository,
	statRepo StatisticRepository,
	userRepo UserRepository,
	notifier Notifier,
	retrier Retrier,
	logger *slog.Logger,
	yearlyInterestPercent int64,
	metrics *metrics.Metrics,
) *SettlementUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &SettlementUseCase{
		txManager:             txManager,
		accountRepo:           accountRepo,
		loanRepo:              loanRepo,
		installmentRepo:       installmentRepo,
		statRepo:              statRepo,
		userRepo:              userRepo,
		notifier:              notifier,
		retrier:               retrier,
		logger:                logger,
		metrics:               metrics,
		yearlyInterestPercent: yearlyInterestPercent,
	}
}

// AccrueInterest adds one day's interest to every active account and keeps
// the statistic credit mirror in step, one transaction per account.
func (uc *SettlementUseCase) AccrueInterest(ctx context.Context) error {
	offset := 0
	for {
		accounts, err := uc.accountRepo.ListActive(ctx, sweepBatchSize, offset)
		if err != nil {
			return err
		}

		if len(accounts) == 0 {
			return nil
		}

		for _, account := range accounts {
			if err := uc.retrier.Retry(ctx, func() error {
				return uc.accrueAccountInterest(ctx, account.ID)
			}); err != nil {
				uc.logger.Error("interest accrual failed",
					"account_id", account.ID,
					"error", err)
			}
		}

		offset += len(accounts)
	}
}

func (uc *SettlementUseCase) accrueAccountInterest(ctx context.Context, accountID string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return err
	}

	if !account.Active {
		return nil
	}

	interest := domain.DailyInterest(account.Credit, uc.yearlyInterestPercent)
	if interest == 0 {
		return nil
	}

	now := time.Now().UTC()

	if err := uc.accountRepo.UpdateCredit(ctx, tx, account.ID, account.ApplyCredit(interest), now); err != nil {
		return err
	}

	if err := uc.statRepo.ApplyDelta(ctx, tx, account.OwnerID, domain.StatisticDelta{Credit: interest}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.InterestAccrued.Inc()
	}

	return nil
}

// SettleDueInstallments deducts every due unsettled installment from its
// debtor's account. When the balance does not cover the amount, the
// installment stays unsettled for the next sweep and the debtor is notified.
func (uc *SettlementUseCase) SettleDueInstallments(ctx context.Context) error {
	now := time.Now().UTC()

	installments, err := uc.installmentRepo.ListDueUnsettled(ctx, now, sweepBatchSize)
	if err != nil {
		return err
	}

	for _, inst := range installments {
		settled, err := uc.settleInstallment(ctx, inst.ID)
		if err != nil {
			uc.logger.Error("installment settlement failed",
				"installment_id", inst.ID,
				"error", err)
			continue
		}

		if !settled {
			if uc.metrics != nil {
				uc.metrics.InstallmentShortfalls.Inc()
			}
			uc.notifyShortfall(ctx, inst)
		}
	}

	return nil
}

// settleInstallment applies the four mutations of one settlement (account
// balance, installment flag, loan remainder, statistic debt) atomically.
// It reports false when the debtor's balance was insufficient.
func (uc *SettlementUseCase) settleInstallment(ctx context.Context, installmentID string) (bool, error) {
	settled := false

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		// Re-read under lock: a concurrent sweep may have settled it already.
		inst, err := uc.installmentRepo.GetByIDForUpdate(ctx, tx, installmentID)
		if err != nil {
			return err
		}

		if inst.Settled {
			settled = true
			return nil
		}

		account, err := uc.accountRepo.GetActiveByOwnerForUpdate(ctx, tx, inst.DebtorID)
		if err != nil {
			return err
		}

		if account.Credit <= inst.Amount {
			settled = false
			return nil
		}

		now := time.Now().UTC()

		if err := uc.accountRepo.UpdateCredit(ctx, tx, account.ID, account.ApplyDebit(inst.Amount), now); err != nil {
			return err
		}

		if _, err := uc.installmentRepo.MarkSettled(ctx, tx, inst.ID); err != nil {
			return err
		}

		loan, err := uc.loanRepo.GetByIDForUpdate(ctx, tx, inst.LoanID)
		if err != nil {
			return err
		}

		if err := uc.loanRepo.UpdateRemainder(ctx, tx, loan.ID, loan.RemainderInstallment-inst.Amount, now); err != nil {
			return err
		}

		if err := uc.statRepo.ApplyDelta(ctx, tx, inst.DebtorID, domain.StatisticDelta{Debt: -inst.Amount}); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		if uc.metrics != nil {
			uc.metrics.InstallmentsSettled.Inc()
		}

		settled = true
		return nil
	})

	return settled, err
}

func (uc *SettlementUseCase) notifyShortfall(ctx context.Context, inst *domain.Installment) {
	debtor, err := uc.userRepo.GetByID(ctx, inst.DebtorID)
	if err != nil {
		return
	}

	uc.notifier.Enqueue(installmentShortfallMessage(debtor, inst.Amount))
}

// CloseFullyPaidLoans marks every unsettled loan whose installments have all
// cleared as settled. The settled transition happens exactly once; re-running
// over an already-settled loan never decrements the statistic twice.
func (uc *SettlementUseCase) CloseFullyPaidLoans(ctx context.Context) error {
	loans, err := uc.loanRepo.ListUnsettled(ctx, sweepBatchSize)
	if err != nil {
		return err
	}

	for _, loan := range loans {
		if err := uc.closeLoan(ctx, loan.ID); err != nil {
			uc.logger.Error("loan closure failed",
				"loan_id", loan.ID,
				"error", err)
		}
	}

	return nil
}

func (uc *SettlementUseCase) closeLoan(ctx context.Context, loanID string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	loan, err := uc.loanRepo.GetByIDForUpdate(ctx, tx, loanID)
	if err != nil {
		return err
	}

	if loan.Settled {
		return nil
	}

	open, err := uc.installmentRepo.CountUnsettledByLoan(ctx, tx, loan.ID)
	if err != nil {
		return err
	}

	if open > 0 {
		return nil
	}

	transitioned, err := uc.loanRepo.MarkSettled(ctx, tx, loan.ID, time.Now().UTC())
	if err != nil {
		return err
	}

	if !transitioned {
		return nil
	}

	if err := uc.statRepo.ApplyDelta(ctx, tx, loan.ApplicantID, domain.StatisticDelta{LoansUnsettled: -1}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.LoansSettled.Inc()
	}

	return nil
}

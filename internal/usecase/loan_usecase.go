package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/radkal2/bonusbank/internal/domain"
	"github.com/radkal2/bonusbank/internal/infrastructure/metrics"
)

// LoanLimits holds the configured bounds for loan principals.
type LoanLimits struct {
	MinAmount int64
	MaxAmount int64
	// AutoDeposit credits the applicant's account with the loan proceeds
	// at grant time.
	AutoDeposit bool
}

// LoanUseCase creates loans with their amortized installment schedules.
type LoanUseCase struct {
	txManager       TransactionManager
	loanRepo        LoanRepository
	installmentRepo InstallmentRepository
	accountRepo     AccountRepository
	branchRepo      BranchRepository
	statRepo        StatisticRepository
	userRepo        UserRepository
	idGen           IDGenerator
	notifier        Notifier
	limits          LoanLimits
	metrics         *metrics.Metrics
}

// NewLoanUseCase creates a new LoanUseCase.
func NewLoanUseCase(
	txManager TransactionManager,
	loanRepo LoanRepository,
	installmentRepo InstallmentRepository,
	accountRepo AccountRepository,
	branchRepo BranchRepository,
	statRepo StatisticRepository,
	userRepo UserRepository,
	idGen IDGenerator,
	notifier Notifier,
	limits LoanLimits,
	metrics *metrics.Metrics,
) *LoanUseCase {
	return &LoanUseCase{
		txManager:       txManager,
		loanRepo:        loanRepo,
		installmentRepo: installmentRepo,
		accountRepo:     accountRepo,
		branchRepo:      branchRepo,
		statRepo:        statRepo,
		userRepo:        userRepo,
		idGen:           idGen,
		notifier:        notifier,
		limits:          limits,
		metrics:         metrics,
	}
}

// CreateLoanInput represents input for creating a loan.
type CreateLoanInput struct {
	ApplicantID string
	BranchID    string
	Amount      int64
	Term        domain.RepaymentTerm
}

// CreateLoan creates a loan together with its installment schedule: exactly
// term installments, due dates one calendar month apart starting one month
// after creation. The loan, its installments, the statistic deltas and the
// optional proceeds deposit commit atomically.
func (uc *LoanUseCase) CreateLoan(ctx context.Context, input CreateLoanInput) (*domain.Loan, error) {
	if !input.Term.IsValid() {
		return nil, domain.ErrInvalidRepaymentTerm
	}

	if input.Amount < uc.limits.MinAmount || input.Amount > uc.limits.MaxAmount {
		return nil, fmt.Errorf("%w: %d is not within [%d, %d]",
			domain.ErrInvalidAmount, input.Amount, uc.limits.MinAmount, uc.limits.MaxAmount)
	}

	if _, err := uc.branchRepo.GetByID(ctx, input.BranchID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// The applicant must hold an active account to receive the proceeds
	// and pay installments from.
	account, err := uc.accountRepo.GetActiveByOwnerForUpdate(ctx, tx, input.ApplicantID)
	if err != nil {
		return nil, err
	}

	loan := &domain.Loan{
		ID:                   uc.idGen.Generate(),
		ApplicantID:          input.ApplicantID,
		BranchID:             input.BranchID,
		Amount:               input.Amount,
		Term:                 input.Term,
		RemainderInstallment: input.Amount,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := uc.loanRepo.Create(ctx, tx, loan); err != nil {
		return nil, err
	}

	installments := domain.BuildInstallmentSchedule(loan, now)
	for _, inst := range installments {
		inst.ID = uc.idGen.Generate()
	}

	if err := uc.installmentRepo.CreateBatch(ctx, tx, installments); err != nil {
		return nil, err
	}

	delta := domain.StatisticDelta{
		Debt:           input.Amount,
		LoansGotten:    1,
		LoansUnsettled: 1,
	}
	if err := uc.statRepo.ApplyDelta(ctx, tx, input.ApplicantID, delta); err != nil {
		return nil, err
	}

	if uc.limits.AutoDeposit {
		if err := uc.accountRepo.UpdateCredit(ctx, tx, account.ID, account.ApplyCredit(input.Amount), now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LoansGranted.Inc()
	}

	if applicant, err := uc.userRepo.GetByID(ctx, input.ApplicantID); err == nil {
		uc.notifier.Enqueue(loanGrantedMessage(applicant, input.Amount, input.Term))
	}

	return loan, nil
}

// GetLoan retrieves a loan with its installments.
func (uc *LoanUseCase) GetLoan(ctx context.Context, id string) (*domain.Loan, []*domain.Installment, error) {
	loan, err := uc.loanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	installments, err := uc.installmentRepo.ListByLoan(ctx, loan.ID)
	if err != nil {
		return nil, nil, err
	}

	return loan, installments, nil
}

// ListLoansByApplicant lists the caller's loans.
func (uc *LoanUseCase) ListLoansByApplicant(ctx context.Context, applicantID string, limit, offset int) ([]*domain.Loan, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.loanRepo.ListByApplicant(ctx, applicantID, limit, offset)
}

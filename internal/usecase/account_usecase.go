package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/radkal2/bonusbank/internal/domain"
	"github.com/radkal2/bonusbank/internal/infrastructure/metrics"
)

// maxNumberAttempts bounds the retry loop for account number collisions.
const maxNumberAttempts = 10

// AccountUseCase handles account opening, closing and lookup.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	branchRepo  BranchRepository
	loanRepo    LoanRepository
	statRepo    StatisticRepository
	userRepo    UserRepository
	idGen       IDGenerator
	numberGen   AccountNumberGenerator
	notifier    Notifier
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	branchRepo BranchRepository,
	loanRepo LoanRepository,
	statRepo StatisticRepository,
	userRepo UserRepository,
	idGen IDGenerator,
	numberGen AccountNumberGenerator,
	notifier Notifier,
	metrics *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		branchRepo:  branchRepo,
		loanRepo:    loanRepo,
		statRepo:    statRepo,
		userRepo:    userRepo,
		idGen:       idGen,
		numberGen:   numberGen,
		notifier:    notifier,
		metrics:     metrics,
	}
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	OwnerID  string
	BranchID string
}

// OpenAccount creates an account at the given branch with a freshly
// generated unique 16-digit number. An owner can hold at most one account
// per bank.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	branch, err := uc.branchRepo.GetByID(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}

	exists, err := uc.accountRepo.ExistsByOwnerAndBank(ctx, input.OwnerID, branch.BankID)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, domain.ErrEntityAlreadyExists
	}

	number, err := uc.uniqueNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		Number:    number,
		OwnerID:   input.OwnerID,
		BranchID:  input.BranchID,
		Credit:    0,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsOpened.Inc()
	}

	if owner, err := uc.userRepo.GetByID(ctx, input.OwnerID); err == nil {
		uc.notifier.Enqueue(accountOpenedMessage(owner, account.Number))
	}

	return account, nil
}

func (uc *AccountUseCase) uniqueNumber(ctx context.Context) (string, error) {
	for i := 0; i < maxNumberAttempts; i++ {
		number := uc.numberGen.AccountNumber()

		exists, err := uc.accountRepo.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}

		if !exists {
			return number, nil
		}
	}

	return "", errors.New("could not generate a unique account number")
}

// CloseAccountInput represents input for closing an account.
type CloseAccountInput struct {
	OwnerID  string
	BranchID string
}

// CloseAccount deactivates the owner's active account. The account survives
// as an inactive row. Closing fails while the owner has an unsettled loan,
// or when the request names a branch other than the account's own.
func (uc *AccountUseCase) CloseAccount(ctx context.Context, input CloseAccountInput) error {
	open, err := uc.loanRepo.CountUnsettledByApplicant(ctx, input.OwnerID)
	if err != nil {
		return err
	}

	if open > 0 {
		return domain.ErrUnsettledLoan
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetActiveByOwnerForUpdate(ctx, tx, input.OwnerID)
	if err != nil {
		return err
	}

	if account.BranchID != input.BranchID {
		return domain.ErrBranchCloseMismatch
	}

	now := time.Now().UTC()

	if err := uc.accountRepo.Deactivate(ctx, tx, account.ID, now); err != nil {
		return err
	}

	if err := uc.statRepo.SetAccountClosed(ctx, tx, account.OwnerID, true, now); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsClosed.Inc()
	}

	return nil
}

// GetAccount retrieves one of the caller's active accounts by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, ownerID, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if account.OwnerID != ownerID || !account.Active {
		return nil, domain.ErrAccountNotFound
	}

	return account, nil
}

// GetAccountByNumber looks an active account up by its number.
func (uc *AccountUseCase) GetAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	if !account.Active {
		return nil, domain.ErrAccountNotFound
	}

	return account, nil
}

// ListAccounts lists the caller's active accounts.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	return uc.accountRepo.ListActiveByOwner(ctx, ownerID)
}

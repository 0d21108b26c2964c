package usecase

import (
	"context"
	"time"

	"github.com/radkal2/bonusbank/internal/domain"
)

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByMobile(ctx context.Context, mobile string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ListByRole(ctx context.Context, role domain.Role, limit, offset int) ([]*domain.User, error)
}

// BankRepository defines data access for banks.
type BankRepository interface {
	Create(ctx context.Context, bank *domain.Bank) error
	GetByID(ctx context.Context, id string) (*domain.Bank, error)
	GetByOwner(ctx context.Context, ownerID string) (*domain.Bank, error)
}

// BranchRepository defines data access for branches.
type BranchRepository interface {
	Create(ctx context.Context, branch *domain.Branch) error
	GetByID(ctx context.Context, id string) (*domain.Branch, error)
	ListByBank(ctx context.Context, bankID string, limit, offset int) ([]*domain.Branch, error)
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	// ExistsByOwnerAndBank reports whether the owner already holds an account
	// at any branch of the given bank.
	ExistsByOwnerAndBank(ctx context.Context, ownerID, bankID string) (bool, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	// GetActiveByOwnerForUpdate locks the owner's single active account.
	GetActiveByOwnerForUpdate(ctx context.Context, tx Transaction, ownerID string) (*domain.Account, error)
	ListActiveByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error)
	ListActive(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	UpdateCredit(ctx context.Context, tx Transaction, id string, credit int64, updatedAt time.Time) error
	Deactivate(ctx context.Context, tx Transaction, id string, updatedAt time.Time) error
}

// TransactionFilter defines filters for the staff transaction report.
type TransactionFilter struct {
	OwnerMobile   string
	SrcAccountID  string
	DestAccountID string
	Kind          domain.TransactionKind
	Limit         int
	Offset        int
}

// TransactionRepository defines data access for transaction audit records.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error)
	// SumAmountByOwnerSince returns the sum of the owner's transaction
	// amounts created at or after the given instant.
	SumAmountByOwnerSince(ctx context.Context, tx Transaction, ownerID string, since time.Time) (int64, error)
}

// LoanRepository defines data access for loans.
type LoanRepository interface {
	Create(ctx context.Context, tx Transaction, loan *domain.Loan) error
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Loan, error)
	ListByApplicant(ctx context.Context, applicantID string, limit, offset int) ([]*domain.Loan, error)
	ListUnsettled(ctx context.Context, limit int) ([]*domain.Loan, error)
	CountUnsettledByApplicant(ctx context.Context, applicantID string) (int64, error)
	UpdateRemainder(ctx context.Context, tx Transaction, id string, remainder int64, updatedAt time.Time) error
	// MarkSettled flips the settled flag. It reports false when the loan was
	// already settled, so the transition happens exactly once.
	MarkSettled(ctx context.Context, tx Transaction, id string, updatedAt time.Time) (bool, error)
}

// InstallmentRepository defines data access for installments.
type InstallmentRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, installments []*domain.Installment) error
	ListByLoan(ctx context.Context, loanID string) ([]*domain.Installment, error)
	// ListDueUnsettled returns unsettled installments whose due date has passed.
	ListDueUnsettled(ctx context.Context, now time.Time, limit int) ([]*domain.Installment, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Installment, error)
	// MarkSettled flips the settled flag, reporting false when it already was.
	MarkSettled(ctx context.Context, tx Transaction, id string) (bool, error)
	CountUnsettledByLoan(ctx context.Context, tx Transaction, loanID string) (int64, error)
}

// StatisticRepository defines data access for the per-user statistic rows.
// All counter mutations go through ApplyDelta so every adjustment happens
// inside the same storage transaction as the entity writes it mirrors.
type StatisticRepository interface {
	Create(ctx context.Context, stat *domain.UserStatistic) error
	GetByUser(ctx context.Context, userID string) (*domain.UserStatistic, error)
	ApplyDelta(ctx context.Context, tx Transaction, userID string, delta domain.StatisticDelta) error
	SetAccountClosed(ctx context.Context, tx Transaction, userID string, closed bool, updatedAt time.Time) error
	UpdateName(ctx context.Context, userID, name string) error
	List(ctx context.Context, filter domain.StatisticFilter) ([]*domain.UserStatistic, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// AccountNumberGenerator generates candidate 16-digit account numbers.
type AccountNumberGenerator interface {
	AccountNumber() string
}

// Notifier is the fire-and-forget SMS sink. Enqueue must never block the
// caller; delivery is best effort.
type Notifier interface {
	Enqueue(message string)
}

// JobLock provides a mutual-exclusion lease keyed by job name so overlapping
// settlement sweeps cannot run concurrently.
type JobLock interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name string) error
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/radkal2/bonusbank/internal/domain"
	"github.com/radkal2/bonusbank/internal/usecase"
	"github.com/radkal2/bonusbank/internal/usecase/mocks"
)

type accountFixture struct {
	accounts  *mocks.MockAccountRepository
	branches  *mocks.MockBranchRepository
	loans     *mocks.MockLoanRepository
	stats     *mocks.MockStatisticRepository
	users     *mocks.MockUserRepository
	numberGen *mocks.MockNumberGenerator
	notifier  *mocks.MockNotifier
	uc        *usecase.AccountUseCase
}

func newAccountFixture() *accountFixture {
	f := &accountFixture{
		accounts:  mocks.NewMockAccountRepository(),
		branches:  mocks.NewMockBranchRepository(),
		loans:     mocks.NewMockLoanRepository(),
		stats:     mocks.NewMockStatisticRepository(),
		users:     mocks.NewMockUserRepository(),
		numberGen: mocks.NewMockNumberGenerator(),
		notifier:  mocks.NewMockNotifier(),
	}

	f.uc = usecase.NewAccountUseCase(
		mocks.NewMockTransactionManager(),
		f.accounts,
		f.branches,
		f.loans,
		f.stats,
		f.users,
		mocks.NewMockIDGenerator(),
		f.numberGen,
		f.notifier,
		nil,
	)

	return f
}

func (f *accountFixture) seed(t *testing.T) {
	t.Helper()

	ctx := context.Background()
	if err := f.branches.Create(ctx, &domain.Branch{ID: "branch-1", Name: "Central", BankID: "bank-1"}); err != nil {
		t.Fatalf("create branch: %v", err)
	}
	if err := f.users.Create(ctx, &domain.User{ID: "user-1", Mobile: "+989121234567", FirstName: "Sara", LastName: "Tehrani"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := f.stats.Create(ctx, &domain.UserStatistic{UserID: "user-1"}); err != nil {
		t.Fatalf("create statistic: %v", err)
	}
}

func TestAccountUseCase_OpenAccount(t *testing.T) {
	f := newAccountFixture()
	f.seed(t)

	account, err := f.uc.OpenAccount(context.Background(), usecase.OpenAccountInput{
		OwnerID:  "user-1",
		BranchID: "branch-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(account.Number) != 16 {
		t.Errorf("expected a 16-digit account number, got %q", account.Number)
	}
	if !account.Active {
		t.Error("expected a new account to be active")
	}
	if account.Credit != 0 {
		t.Errorf("expected zero opening balance, got %d", account.Credit)
	}
	if got := len(f.notifier.Sent()); got != 1 {
		t.Errorf("expected 1 notification, got %d", got)
	}
}

func TestAccountUseCase_OpenAccountRetriesNumberCollision(t *testing.T) {
	f := newAccountFixture()
	f.seed(t)

	// An existing account already holds the first generated number.
	taken := &domain.Account{ID: "acc-0", Number: "0000000000000001", OwnerID: "user-0", Active: true}
	if err := f.accounts.Create(context.Background(), taken); err != nil {
		t.Fatalf("create account: %v", err)
	}

	account, err := f.uc.OpenAccount(context.Background(), usecase.OpenAccountInput{
		OwnerID:  "user-1",
		BranchID: "branch-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.Number == taken.Number {
		t.Errorf("expected a fresh number, got the taken one %q", account.Number)
	}
}

func TestAccountUseCase_OpenAccountDuplicateOwner(t *testing.T) {
	f := newAccountFixture()
	f.seed(t)

	existing := &domain.Account{ID: "acc-1", Number: "1111111111111111", OwnerID: "user-1", BranchID: "branch-1", Active: true}
	if err := f.accounts.Create(context.Background(), existing); err != nil {
		t.Fatalf("create account: %v", err)
	}

	_, err := f.uc.OpenAccount(context.Background(), usecase.OpenAccountInput{
		OwnerID:  "user-1",
		BranchID: "branch-1",
	})
	if !errors.Is(err, domain.ErrEntityAlreadyExists) {
		t.Fatalf("expected ErrEntityAlreadyExists, got %v", err)
	}
}

func TestAccountUseCase_OpenAccountUnknownBranch(t *testing.T) {
	f := newAccountFixture()
	f.seed(t)

	_, err := f.uc.OpenAccount(context.Background(), usecase.OpenAccountInput{
		OwnerID:  "user-1",
		BranchID: "branch-missing",
	})
	if !errors.Is(err, domain.ErrBranchNotFound) {
		t.Fatalf("expected ErrBranchNotFound, got %v", err)
	}
}

func TestAccountUseCase_CloseAccount(t *testing.T) {
	f := newAccountFixture()
	f.seed(t)

	account := &domain.Account{ID: "acc-1", Number: "1111111111111111", OwnerID: "user-1", BranchID: "branch-1", Active: true}
	if err := f.accounts.Create(context.Background(), account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	if err := f.uc.CloseAccount(context.Background(), usecase.CloseAccountInput{
		OwnerID:  "user-1",
		BranchID: "branch-1",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := f.accounts.GetByID(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.Active {
		t.Error("expected the account to be inactive after closing")
	}

	stat, err := f.stats.GetByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get statistic: %v", err)
	}
	if !stat.AccountClosed {
		t.Error("expected the statistic row to record the closure")
	}
}

func TestAccountUseCase_CloseAccountBranchMismatch(t *testing.T) {
	f := newAccountFixture()
	f.seed(t)

	account := &domain.Account{ID: "acc-1", Number: "1111111111111111", OwnerID: "user-1", BranchID: "branch-1", Active: true}
	if err := f.accounts.Create(context.Background(), account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	err := f.uc.CloseAccount(context.Background(), usecase.CloseAccountInput{
		OwnerID:  "user-1",
		BranchID: "branch-2",
	})
	if !errors.Is(err, domain.ErrBranchCloseMismatch) {
		t.Fatalf("expected ErrBranchCloseMismatch, got %v", err)
	}

	got, err := f.accounts.GetByID(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !got.Active {
		t.Error("expected the account to stay active")
	}
}

func TestAccountUseCase_CloseAccountWithUnsettledLoan(t *testing.T) {
	f := newAccountFixture()
	f.seed(t)

	account := &domain.Account{ID: "acc-1", Number: "1111111111111111", OwnerID: "user-1", BranchID: "branch-1", Active: true}
	if err := f.accounts.Create(context.Background(), account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	loan := &domain.Loan{ID: "loan-1", ApplicantID: "user-1", BranchID: "branch-1", Amount: 1200, Term: domain.TermTwelveMonths, RemainderInstallment: 1200}
	if err := f.loans.Create(context.Background(), nil, loan); err != nil {
		t.Fatalf("create loan: %v", err)
	}

	err := f.uc.CloseAccount(context.Background(), usecase.CloseAccountInput{
		OwnerID:  "user-1",
		BranchID: "branch-1",
	})
	if !errors.Is(err, domain.ErrUnsettledLoan) {
		t.Fatalf("expected ErrUnsettledLoan, got %v", err)
	}
}

func TestAccountUseCase_GetAccount(t *testing.T) {
	f := newAccountFixture()
	f.seed(t)

	account := &domain.Account{ID: "acc-1", Number: "1111111111111111", OwnerID: "user-1", BranchID: "branch-1", Active: true}
	if err := f.accounts.Create(context.Background(), account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	if _, err := f.uc.GetAccount(context.Background(), "user-1", "acc-1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// Another user's account is invisible.
	if _, err := f.uc.GetAccount(context.Background(), "user-2", "acc-1"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound for foreign account, got %v", err)
	}

	// Closed accounts are invisible too.
	if err := f.accounts.Deactivate(context.Background(), nil, "acc-1", time.Now().UTC()); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := f.uc.GetAccount(context.Background(), "user-1", "acc-1"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound for closed account, got %v", err)
	}
}

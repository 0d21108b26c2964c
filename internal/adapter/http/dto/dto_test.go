package dto

import (
	"testing"
	"time"

	"github.com/radkal2/bonusbank/internal/domain"
	"github.com/radkal2/bonusbank/internal/usecase"
)

func TestRegisterRequest_ToUseCaseInput(t *testing.T) {
	req := &RegisterRequest{
		Mobile:    "09121234567",
		Password:  "secret-pass",
		FirstName: "Sara",
		LastName:  "Tehrani",
	}

	got := req.ToUseCaseInput()
	want := usecase.RegisterInput{
		Mobile:    "09121234567",
		Password:  "secret-pass",
		FirstName: "Sara",
		LastName:  "Tehrani",
	}

	if got != want {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}
}

func TestApplyTransactionRequest_ToUseCaseInput(t *testing.T) {
	req := &ApplyTransactionRequest{
		Kind:          domain.KindDeposit,
		DestAccountID: "acc-2",
		SrcAccountID:  "acc-1",
		Amount:        5000,
	}

	got := req.ToUseCaseInput("user-1")
	want := usecase.ApplyTransactionInput{
		OwnerID:       "user-1",
		DestAccountID: "acc-2",
		SrcAccountID:  "acc-1",
		Amount:        5000,
		Kind:          domain.KindDeposit,
	}

	if got != want {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}
}

func TestCreateLoanRequest_ToUseCaseInput(t *testing.T) {
	req := &CreateLoanRequest{
		BranchID: "branch-1",
		Amount:   2_000_000,
		Term:     24,
	}

	got := req.ToUseCaseInput("user-1")
	if got.ApplicantID != "user-1" || got.Term != domain.TermTwentyFourMonths {
		t.Fatalf("ToUseCaseInput() = %+v", got)
	}
}

func TestAccountFromDomain(t *testing.T) {
	now := time.Now()
	account := &domain.Account{
		ID:        "acc-1",
		Number:    "1234567890123456",
		OwnerID:   "user-1",
		BranchID:  "branch-1",
		Credit:    50_000,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	resp := AccountFromDomain(account)
	if resp.ID != account.ID || resp.Number != account.Number || resp.Credit != 50_000 {
		t.Fatalf("unexpected account response: %+v", resp)
	}

	list := AccountsFromDomain([]*domain.Account{account})
	if len(list) != 1 || list[0].ID != account.ID {
		t.Fatalf("AccountsFromDomain returned %+v", list)
	}
}

func TestUserFromDomainOmitsPassword(t *testing.T) {
	user := &domain.User{
		ID:             "user-1",
		Mobile:         "+989121234567",
		FirstName:      "Sara",
		LastName:       "Tehrani",
		HashedPassword: "$2a$10$abcdef",
		Role:           domain.RoleUser,
	}

	resp := UserFromDomain(user)
	if resp.ID != user.ID || resp.Mobile != user.Mobile {
		t.Fatalf("unexpected user response: %+v", resp)
	}
}

func TestLoanDetailFromDomain(t *testing.T) {
	now := time.Now()
	loan := &domain.Loan{
		ID:                   "loan-1",
		ApplicantID:          "user-1",
		Amount:               1200,
		Term:                 domain.TermTwelveMonths,
		RemainderInstallment: 1200,
		CreatedAt:            now,
	}
	installments := []*domain.Installment{
		{ID: "inst-1", LoanID: "loan-1", Amount: 100, DueDate: now.AddDate(0, 1, 0)},
	}

	resp := LoanDetailResponse{
		Loan:         LoanFromDomain(loan),
		Installments: InstallmentsFromDomain(installments),
	}
	if resp.Loan.Term != 12 || len(resp.Installments) != 1 || resp.Installments[0].Amount != 100 {
		t.Fatalf("unexpected loan detail: %+v", resp)
	}
}

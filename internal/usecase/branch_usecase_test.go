package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/radkal2/bonusbank/internal/domain"
	"github.com/radkal2/bonusbank/internal/usecase"
	"github.com/radkal2/bonusbank/internal/usecase/mocks"
)

func TestBranchUseCase_CreateBranch(t *testing.T) {
	banks := mocks.NewMockBankRepository()
	branches := mocks.NewMockBranchRepository()
	uc := usecase.NewBranchUseCase(banks, branches, mocks.NewMockIDGenerator())

	ctx := context.Background()

	bank, err := uc.CreateBank(ctx, usecase.CreateBankInput{Name: "Mellat", OwnerID: "owner-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	branch, err := uc.CreateBranch(ctx, usecase.CreateBranchInput{Name: "Central", BankID: bank.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if branch.BankID != bank.ID {
		t.Errorf("expected branch bank %s, got %s", bank.ID, branch.BankID)
	}

	if _, err := uc.CreateBranch(ctx, usecase.CreateBranchInput{Name: "Central", BankID: "bank-missing"}); !errors.Is(err, domain.ErrBankNotFound) {
		t.Errorf("expected ErrBankNotFound, got %v", err)
	}
}

func TestBranchUseCase_DuplicateBankName(t *testing.T) {
	banks := mocks.NewMockBankRepository()
	branches := mocks.NewMockBranchRepository()
	uc := usecase.NewBranchUseCase(banks, branches, mocks.NewMockIDGenerator())

	ctx := context.Background()

	if _, err := uc.CreateBank(ctx, usecase.CreateBankInput{Name: "Mellat", OwnerID: "owner-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.CreateBank(ctx, usecase.CreateBankInput{Name: "Mellat", OwnerID: "owner-2"}); !errors.Is(err, domain.ErrEntityAlreadyExists) {
		t.Errorf("expected ErrEntityAlreadyExists, got %v", err)
	}
}

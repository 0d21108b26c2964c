package usecase

import (
	"context"
	"time"

	"github.com/radkal2/bonusbank/internal/domain"
)

// BranchUseCase handles bank and branch management (staff only at the
// request boundary).
type BranchUseCase struct {
	bankRepo   BankRepository
	branchRepo BranchRepository
	idGen      IDGenerator
}

// NewBranchUseCase creates a new BranchUseCase.
func NewBranchUseCase(bankRepo BankRepository, branchRepo BranchRepository, idGen IDGenerator) *BranchUseCase {
	return &BranchUseCase{
		bankRepo:   bankRepo,
		branchRepo: branchRepo,
		idGen:      idGen,
	}
}

// CreateBankInput represents input for creating a bank.
type CreateBankInput struct {
	Name    string
	OwnerID string
}

// CreateBank creates a bank.
func (uc *BranchUseCase) CreateBank(ctx context.Context, input CreateBankInput) (*domain.Bank, error) {
	now := time.Now().UTC()
	bank := &domain.Bank{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		OwnerID:   input.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.bankRepo.Create(ctx, bank); err != nil {
		return nil, err
	}

	return bank, nil
}

// CreateBranchInput represents input for creating a branch.
type CreateBranchInput struct {
	Name      string
	BankID    string
	ManagerID string
}

// CreateBranch creates a branch of an existing bank.
func (uc *BranchUseCase) CreateBranch(ctx context.Context, input CreateBranchInput) (*domain.Branch, error) {
	if _, err := uc.bankRepo.GetByID(ctx, input.BankID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	branch := &domain.Branch{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		BankID:    input.BankID,
		ManagerID: input.ManagerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}

	return branch, nil
}

// GetBranch retrieves a branch by ID.
func (uc *BranchUseCase) GetBranch(ctx context.Context, id string) (*domain.Branch, error) {
	return uc.branchRepo.GetByID(ctx, id)
}

// ListBranches lists the branches of a bank.
func (uc *BranchUseCase) ListBranches(ctx context.Context, bankID string, limit, offset int) ([]*domain.Branch, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.branchRepo.ListByBank(ctx, bankID, limit, offset)
}

// GetBankByOwner retrieves the bank owned by the given user.
func (uc *BranchUseCase) GetBankByOwner(ctx context.Context, ownerID string) (*domain.Bank, error) {
	return uc.bankRepo.GetByOwner(ctx, ownerID)
}

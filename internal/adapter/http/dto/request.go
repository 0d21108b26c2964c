package dto

import (
	"github.com/radkal2/bonusbank/internal/domain"
	"github.com/radkal2/bonusbank/internal/usecase"
)

// RegisterRequest represents a request to register a user.
type RegisterRequest struct {
	Mobile    string `json:"mobile"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Mobile:    r.Mobile,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents a request to update the caller's profile.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CreateBankRequest represents a request to create a bank.
type CreateBankRequest struct {
	Name string `json:"name"`
}

// CreateBranchRequest represents a request to create a branch.
type CreateBranchRequest struct {
	Name      string `json:"name"`
	BankID    string `json:"bank_id"`
	ManagerID string `json:"manager_id"`
}

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	BranchID string `json:"branch_id"`
}

// CloseAccountRequest represents a request to close the caller's account.
// The branch must be the one the account was opened at.
type CloseAccountRequest struct {
	BranchID string `json:"branch_id"`
}

// ApplyTransactionRequest represents a request to move money.
// SrcAccountID is only set for account-to-account deposits.
type ApplyTransactionRequest struct {
	Kind          domain.TransactionKind `json:"kind"`
	DestAccountID string                 `json:"dest_account_id"`
	SrcAccountID  string                 `json:"src_account_id,omitempty"`
	Amount        int64                  `json:"amount"`
}

// ToUseCaseInput converts to use case input for the given owner.
func (r *ApplyTransactionRequest) ToUseCaseInput(ownerID string) usecase.ApplyTransactionInput {
	return usecase.ApplyTransactionInput{
		OwnerID:       ownerID,
		DestAccountID: r.DestAccountID,
		SrcAccountID:  r.SrcAccountID,
		Amount:        r.Amount,
		Kind:          r.Kind,
	}
}

// CreateLoanRequest represents a request for an installment loan.
type CreateLoanRequest struct {
	BranchID string `json:"branch_id"`
	Amount   int64  `json:"amount"`
	Term     int    `json:"term"`
}

// ToUseCaseInput converts to use case input for the given applicant.
func (r *CreateLoanRequest) ToUseCaseInput(applicantID string) usecase.CreateLoanInput {
	return usecase.CreateLoanInput{
		ApplicantID: applicantID,
		BranchID:    r.BranchID,
		Amount:      r.Amount,
		Term:        domain.RepaymentTerm(r.Term),
	}
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

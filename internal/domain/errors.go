package domain

import "errors"

var (
	// Entity lookup errors
	ErrUserNotFound        = errors.New("user not found")
	ErrBankNotFound        = errors.New("bank not found")
	ErrBranchNotFound      = errors.New("branch not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrLoanNotFound        = errors.New("loan not found")
	ErrStatisticNotFound   = errors.New("user statistic not found")
	ErrInstallmentNotFound = errors.New("installment not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Validation failures surfaced to the caller with a fixed status.
	ErrEntityAlreadyExists  = errors.New("entity already exists")
	ErrAccountLimitExceeded = errors.New("account limit exceeded")
	ErrMinBalanceLimit      = errors.New("minimum balance limit reached")
	ErrBranchCloseMismatch  = errors.New("user cannot close his account in this branch")
	ErrUnsettledLoan        = errors.New("you have unsettled loans")

	// Transaction errors
	ErrSameAccount     = errors.New("source and destination account are the same")
	ErrAccountNotOwned = errors.New("this account does not belong to user")
	ErrAccountInactive = errors.New("account is not active")
	ErrInvalidAmount   = errors.New("amount is out of the allowed bounds")
	ErrInvalidKind     = errors.New("unsupported transaction kind")

	// Loan errors
	ErrInvalidRepaymentTerm = errors.New("unsupported repayment term")
)

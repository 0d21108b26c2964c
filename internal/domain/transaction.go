package domain

import "time"

// TransactionKind classifies a completed money movement.
type TransactionKind string

const (
	// KindDepositCash credits a destination account with cash.
	KindDepositCash TransactionKind = "DEPOSIT_CASH"

	// KindDeposit moves money from a source account to a destination account.
	KindDeposit TransactionKind = "DEPOSIT"

	// KindWithdraw records a cash withdrawal against the destination account.
	KindWithdraw TransactionKind = "WITHDRAW"
)

// IsValid checks if the kind is one of the supported transaction kinds.
func (k TransactionKind) IsValid() bool {
	switch k {
	case KindDepositCash, KindDeposit, KindWithdraw:
		return true
	}
	return false
}

// Transaction is an immutable audit record of one completed money movement.
// It is created only after the balance mutation succeeds and never mutated.
type Transaction struct {
	ID            string
	OwnerID       string
	SrcAccountID  string // empty for cash deposits and withdrawals
	DestAccountID string
	Amount        int64
	Kind          TransactionKind
	CreatedAt     time.Time
}

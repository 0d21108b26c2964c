package dto

import (
	"time"

	"github.com/radkal2/bonusbank/internal/domain"
)

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string      `json:"id"`
	Mobile    string      `json:"mobile"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      domain.Role `json:"role"`
	Staff     bool        `json:"staff"`
	CreatedAt time.Time   `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Mobile:    u.Mobile,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Staff:     u.Staff,
		CreatedAt: u.CreatedAt,
	}
}

// UsersFromDomain converts domain users to responses.
func UsersFromDomain(users []*domain.User) []*UserResponse {
	result := make([]*UserResponse, len(users))
	for i, u := range users {
		result[i] = UserFromDomain(u)
	}
	return result
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// BankResponse represents a bank in API responses.
type BankResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BankFromDomain converts a domain bank to a response.
func BankFromDomain(b *domain.Bank) *BankResponse {
	return &BankResponse{
		ID:        b.ID,
		Name:      b.Name,
		OwnerID:   b.OwnerID,
		CreatedAt: b.CreatedAt,
	}
}

// BranchResponse represents a branch in API responses.
type BranchResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BankID    string    `json:"bank_id"`
	ManagerID string    `json:"manager_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BranchFromDomain converts a domain branch to a response.
func BranchFromDomain(b *domain.Branch) *BranchResponse {
	return &BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		BankID:    b.BankID,
		ManagerID: b.ManagerID,
		CreatedAt: b.CreatedAt,
	}
}

// BranchesFromDomain converts domain branches to responses.
func BranchesFromDomain(branches []*domain.Branch) []*BranchResponse {
	result := make([]*BranchResponse, len(branches))
	for i, b := range branches {
		result[i] = BranchFromDomain(b)
	}
	return result
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	OwnerID   string    `json:"owner_id"`
	BranchID  string    `json:"branch_id"`
	Credit    int64     `json:"credit"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Number:    a.Number,
		OwnerID:   a.OwnerID,
		BranchID:  a.BranchID,
		Credit:    a.Credit,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// TransactionResponse represents a money movement in API responses.
type TransactionResponse struct {
	ID            string                 `json:"id"`
	OwnerID       string                 `json:"owner_id"`
	SrcAccountID  string                 `json:"src_account_id,omitempty"`
	DestAccountID string                 `json:"dest_account_id"`
	Amount        int64                  `json:"amount"`
	Kind          domain.TransactionKind `json:"kind"`
	CreatedAt     time.Time              `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		OwnerID:       t.OwnerID,
		SrcAccountID:  t.SrcAccountID,
		DestAccountID: t.DestAccountID,
		Amount:        t.Amount,
		Kind:          t.Kind,
		CreatedAt:     t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// LoanResponse represents a loan in API responses.
type LoanResponse struct {
	ID                   string    `json:"id"`
	ApplicantID          string    `json:"applicant_id"`
	BranchID             string    `json:"branch_id"`
	Amount               int64     `json:"amount"`
	Term                 int       `json:"term"`
	RemainderInstallment int64     `json:"remainder_installment"`
	Settled              bool      `json:"settled"`
	CreatedAt            time.Time `json:"created_at"`
}

// LoanFromDomain converts a domain loan to a response.
func LoanFromDomain(l *domain.Loan) *LoanResponse {
	return &LoanResponse{
		ID:                   l.ID,
		ApplicantID:          l.ApplicantID,
		BranchID:             l.BranchID,
		Amount:               l.Amount,
		Term:                 int(l.Term),
		RemainderInstallment: l.RemainderInstallment,
		Settled:              l.Settled,
		CreatedAt:            l.CreatedAt,
	}
}

// LoansFromDomain converts domain loans to responses.
func LoansFromDomain(loans []*domain.Loan) []*LoanResponse {
	result := make([]*LoanResponse, len(loans))
	for i, l := range loans {
		result[i] = LoanFromDomain(l)
	}
	return result
}

// InstallmentResponse represents an installment in API responses.
type InstallmentResponse struct {
	ID      string    `json:"id"`
	LoanID  string    `json:"loan_id"`
	Amount  int64     `json:"amount"`
	DueDate time.Time `json:"due_date"`
	Settled bool      `json:"settled"`
}

// InstallmentsFromDomain converts domain installments to responses.
func InstallmentsFromDomain(installments []*domain.Installment) []*InstallmentResponse {
	result := make([]*InstallmentResponse, len(installments))
	for i, inst := range installments {
		result[i] = &InstallmentResponse{
			ID:      inst.ID,
			LoanID:  inst.LoanID,
			Amount:  inst.Amount,
			DueDate: inst.DueDate,
			Settled: inst.Settled,
		}
	}
	return result
}

// LoanDetailResponse is a loan together with its installment schedule.
type LoanDetailResponse struct {
	Loan         *LoanResponse          `json:"loan"`
	Installments []*InstallmentResponse `json:"installments"`
}

// StatisticResponse represents a user statistic row in API responses.
type StatisticResponse struct {
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Mobile         string    `json:"mobile"`
	Credit         int64     `json:"credit"`
	Debt           int64     `json:"debt"`
	AccountClosed  bool      `json:"account_closed"`
	LoansGotten    int64     `json:"loans_gotten"`
	LoansUnsettled int64     `json:"loans_unsettled"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StatisticFromDomain converts a domain statistic to a response.
func StatisticFromDomain(s *domain.UserStatistic) *StatisticResponse {
	return &StatisticResponse{
		UserID:         s.UserID,
		Name:           s.Name,
		Mobile:         s.Mobile,
		Credit:         s.Credit,
		Debt:           s.Debt,
		AccountClosed:  s.AccountClosed,
		LoansGotten:    s.LoansGotten,
		LoansUnsettled: s.LoansUnsettled,
		UpdatedAt:      s.UpdatedAt,
	}
}

// StatisticsFromDomain converts domain statistics to responses.
func StatisticsFromDomain(stats []*domain.UserStatistic) []*StatisticResponse {
	result := make([]*StatisticResponse, len(stats))
	for i, s := range stats {
		result[i] = StatisticFromDomain(s)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

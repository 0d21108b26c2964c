package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/radkal2/bonusbank/internal/domain"
	"github.com/radkal2/bonusbank/internal/usecase"
)

// MockTx is a no-op transaction that records its outcome.
type MockTx struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTx) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out MockTx transactions.
type MockTransactionManager struct {
	mu    sync.Mutex
	Begun []*MockTx

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTx{}
	m.Begun = append(m.Begun, tx)
	return tx, nil
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%d", m.next)
}

// MockNumberGenerator generates sequential 16-digit account numbers.
type MockNumberGenerator struct {
	mu   sync.Mutex
	next int64

	AccountNumberFunc func() string
}

func NewMockNumberGenerator() *MockNumberGenerator {
	return &MockNumberGenerator{}
}

func (m *MockNumberGenerator) AccountNumber() string {
	if m.AccountNumberFunc != nil {
		return m.AccountNumberFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("%016d", m.next)
}

// MockNotifier records enqueued messages.
type MockNotifier struct {
	mu       sync.Mutex
	Messages []string
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Enqueue(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, message)
}

func (m *MockNotifier) Sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Messages...)
}

// MockRetrier runs the operation once without retrying.
type MockRetrier struct{}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	GetByIDFunc     func(ctx context.Context, id string) (*domain.User, error)
	GetByMobileFunc func(ctx context.Context, mobile string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	if m.GetByMobileFunc != nil {
		return m.GetByMobileFunc(ctx, mobile)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Mobile == mobile {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role domain.Role, limit, offset int) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

// MockBankRepository is an in-memory implementation of BankRepository.
type MockBankRepository struct {
	mu    sync.RWMutex
	banks map[string]*domain.Bank
}

func NewMockBankRepository() *MockBankRepository {
	return &MockBankRepository{banks: make(map[string]*domain.Bank)}
}

func (m *MockBankRepository) Create(ctx context.Context, bank *domain.Bank) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.banks {
		if b.Name == bank.Name {
			return domain.ErrEntityAlreadyExists
		}
	}
	m.banks[bank.ID] = bank
	return nil
}

func (m *MockBankRepository) GetByID(ctx context.Context, id string) (*domain.Bank, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.banks[id]; ok {
		return b, nil
	}
	return nil, domain.ErrBankNotFound
}

func (m *MockBankRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.Bank, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.banks {
		if b.OwnerID == ownerID {
			return b, nil
		}
	}
	return nil, domain.ErrBankNotFound
}

// MockBranchRepository is an in-memory implementation of BranchRepository.
type MockBranchRepository struct {
	mu       sync.RWMutex
	branches map[string]*domain.Branch

	GetByIDFunc func(ctx context.Context, id string) (*domain.Branch, error)
}

func NewMockBranchRepository() *MockBranchRepository {
	return &MockBranchRepository{branches: make(map[string]*domain.Branch)}
}

func (m *MockBranchRepository) Create(ctx context.Context, branch *domain.Branch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.branches[branch.ID] = branch
	return nil
}

func (m *MockBranchRepository) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.branches[id]; ok {
		return b, nil
	}
	return nil, domain.ErrBranchNotFound
}

func (m *MockBranchRepository) ListByBank(ctx context.Context, bankID string, limit, offset int) ([]*domain.Branch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Branch
	for _, b := range m.branches {
		if b.BankID == bankID {
			out = append(out, b)
		}
	}
	return out, nil
}

// MockAccountRepository is an in-memory implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateCreditFunc      func(ctx context.Context, tx usecase.Transaction, id string, credit int64, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.accounts {
		if a.Number == number {
			return a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.accounts {
		if a.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockAccountRepository) ExistsByOwnerAndBank(ctx context.Context, ownerID, bankID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.accounts {
		if a.OwnerID == ownerID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Account
	for _, id := range ids {
		if a, ok := m.accounts[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAccountRepository) GetActiveByOwnerForUpdate(ctx context.Context, tx usecase.Transaction, ownerID string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.accounts {
		if a.OwnerID == ownerID && a.Active {
			return a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ListActiveByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Account
	for _, a := range m.accounts {
		if a.OwnerID == ownerID && a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAccountRepository) ListActive(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var all []*domain.Account
	for _, a := range m.accounts {
		if a.Active {
			all = append(all, a)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *MockAccountRepository) UpdateCredit(ctx context.Context, tx usecase.Transaction, id string, credit int64, updatedAt time.Time) error {
	if m.UpdateCreditFunc != nil {
		return m.UpdateCreditFunc(ctx, tx, id, credit, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Credit = credit
	a.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) Deactivate(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Active = false
	a.UpdatedAt = updatedAt
	return nil
}

// MockTransactionRepository is an in-memory implementation of
// TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	Transactions []*domain.Transaction

	CreateFunc func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions = append(m.Transactions, txn)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.Transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, t := range m.Transactions {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MockTransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, t := range m.Transactions {
		if filter.Kind != "" && t.Kind != filter.Kind {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *MockTransactionRepository) SumAmountByOwnerSince(ctx context.Context, tx usecase.Transaction, ownerID string, since time.Time) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total int64
	for _, t := range m.Transactions {
		if t.OwnerID == ownerID && !t.CreatedAt.Before(since) {
			total += t.Amount
		}
	}
	return total, nil
}

// MockLoanRepository is an in-memory implementation of LoanRepository.
type MockLoanRepository struct {
	mu    sync.RWMutex
	loans map[string]*domain.Loan

	CreateFunc func(ctx context.Context, tx usecase.Transaction, loan *domain.Loan) error
}

func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{loans: make(map[string]*domain.Loan)}
}

func (m *MockLoanRepository) Create(ctx context.Context, tx usecase.Transaction, loan *domain.Loan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, loan)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loans[loan.ID] = loan
	return nil
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.loans[id]; ok {
		return l, nil
	}
	return nil, domain.ErrLoanNotFound
}

func (m *MockLoanRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Loan, error) {
	return m.GetByID(ctx, id)
}

func (m *MockLoanRepository) ListByApplicant(ctx context.Context, applicantID string, limit, offset int) ([]*domain.Loan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Loan
	for _, l := range m.loans {
		if l.ApplicantID == applicantID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *MockLoanRepository) ListUnsettled(ctx context.Context, limit int) ([]*domain.Loan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Loan
	for _, l := range m.loans {
		if !l.Settled {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *MockLoanRepository) CountUnsettledByApplicant(ctx context.Context, applicantID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, l := range m.loans {
		if l.ApplicantID == applicantID && !l.Settled {
			n++
		}
	}
	return n, nil
}

func (m *MockLoanRepository) UpdateRemainder(ctx context.Context, tx usecase.Transaction, id string, remainder int64, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.loans[id]
	if !ok {
		return domain.ErrLoanNotFound
	}
	l.RemainderInstallment = remainder
	l.UpdatedAt = updatedAt
	return nil
}

func (m *MockLoanRepository) MarkSettled(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.loans[id]
	if !ok {
		return false, domain.ErrLoanNotFound
	}
	if l.Settled {
		return false, nil
	}
	l.Settled = true
	l.UpdatedAt = updatedAt
	return true, nil
}

// MockInstallmentRepository is an in-memory implementation of
// InstallmentRepository.
type MockInstallmentRepository struct {
	mu           sync.RWMutex
	Installments map[string]*domain.Installment
}

func NewMockInstallmentRepository() *MockInstallmentRepository {
	return &MockInstallmentRepository{Installments: make(map[string]*domain.Installment)}
}

func (m *MockInstallmentRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, installments []*domain.Installment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inst := range installments {
		m.Installments[inst.ID] = inst
	}
	return nil
}

func (m *MockInstallmentRepository) ListByLoan(ctx context.Context, loanID string) ([]*domain.Installment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Installment
	for _, inst := range m.Installments {
		if inst.LoanID == loanID {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (m *MockInstallmentRepository) ListDueUnsettled(ctx context.Context, now time.Time, limit int) ([]*domain.Installment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Installment
	for _, inst := range m.Installments {
		if !inst.Settled && inst.DueDate.Before(now) {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (m *MockInstallmentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Installment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inst, ok := m.Installments[id]; ok {
		return inst, nil
	}
	return nil, domain.ErrInstallmentNotFound
}

func (m *MockInstallmentRepository) MarkSettled(ctx context.Context, tx usecase.Transaction, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.Installments[id]
	if !ok {
		return false, domain.ErrInstallmentNotFound
	}
	if inst.Settled {
		return false, nil
	}
	inst.Settled = true
	return true, nil
}

func (m *MockInstallmentRepository) CountUnsettledByLoan(ctx context.Context, tx usecase.Transaction, loanID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, inst := range m.Installments {
		if inst.LoanID == loanID && !inst.Settled {
			n++
		}
	}
	return n, nil
}

// MockStatisticRepository is an in-memory implementation of
// StatisticRepository.
type MockStatisticRepository struct {
	mu    sync.RWMutex
	stats map[string]*domain.UserStatistic

	ApplyDeltaFunc func(ctx context.Context, tx usecase.Transaction, userID string, delta domain.StatisticDelta) error
}

func NewMockStatisticRepository() *MockStatisticRepository {
	return &MockStatisticRepository{stats: make(map[string]*domain.UserStatistic)}
}

func (m *MockStatisticRepository) Create(ctx context.Context, stat *domain.UserStatistic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[stat.UserID] = stat
	return nil
}

func (m *MockStatisticRepository) GetByUser(ctx context.Context, userID string) (*domain.UserStatistic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.stats[userID]; ok {
		return s, nil
	}
	return nil, domain.ErrStatisticNotFound
}

func (m *MockStatisticRepository) ApplyDelta(ctx context.Context, tx usecase.Transaction, userID string, delta domain.StatisticDelta) error {
	if m.ApplyDeltaFunc != nil {
		return m.ApplyDeltaFunc(ctx, tx, userID, delta)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stats[userID]
	if !ok {
		return domain.ErrStatisticNotFound
	}
	s.Credit += delta.Credit
	s.Debt += delta.Debt
	s.LoansGotten += delta.LoansGotten
	s.LoansUnsettled += delta.LoansUnsettled
	return nil
}

func (m *MockStatisticRepository) SetAccountClosed(ctx context.Context, tx usecase.Transaction, userID string, closed bool, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stats[userID]
	if !ok {
		return domain.ErrStatisticNotFound
	}
	s.AccountClosed = closed
	s.UpdatedAt = updatedAt
	return nil
}

func (m *MockStatisticRepository) UpdateName(ctx context.Context, userID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stats[userID]
	if !ok {
		return domain.ErrStatisticNotFound
	}
	s.Name = name
	return nil
}

func (m *MockStatisticRepository) List(ctx context.Context, filter domain.StatisticFilter) ([]*domain.UserStatistic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.UserStatistic
	for _, s := range m.stats {
		if filter.Mobile != "" && s.Mobile != filter.Mobile {
			continue
		}
		if filter.AccountClosed != nil && s.AccountClosed != *filter.AccountClosed {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

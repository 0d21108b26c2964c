package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/radkal2/bonusbank/internal/adapter/http/handler"
	apimiddleware "github.com/radkal2/bonusbank/internal/adapter/http/middleware"
	"github.com/radkal2/bonusbank/internal/domain"
	"github.com/radkal2/bonusbank/internal/infrastructure/auth"
	"github.com/radkal2/bonusbank/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_CustomerRoutesRequireAuth(t *testing.T) {
	router := NewRouter(newRouterConfig())

	for _, path := range []string{"/api/v1/accounts/", "/api/v1/transactions/", "/api/v1/loans/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected %s to require auth, got %d", path, rec.Code)
		}
	}
}

func TestNewRouter_StaffRoutesRejectCustomers(t *testing.T) {
	jwtManager := auth.NewJWTManager("router-test-secret", time.Hour)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.JWTManager = jwtManager
	}))

	token, err := jwtManager.Generate(&domain.User{ID: "user-1", Mobile: "+989121234567", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/statistics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected customer to be rejected from staff route, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"mobile":"09121234567","password":"secret-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/users/register",
		"POST /api/v1/users/login",
		"POST /api/v1/accounts/",
		"POST /api/v1/accounts/close",
		"POST /api/v1/transactions/",
		"GET /api/v1/transactions/{id}",
		"POST /api/v1/loans/",
		"GET /api/v1/loans/{id}",
		"GET /api/v1/reports/statistics",
		"GET /api/v1/reports/transactions",
		"POST /api/v1/banks",
		"POST /api/v1/branches",
		"GET /api/v1/accounts/by-number/{number}",
		"POST /api/v1/admin/sweeps/{job}",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	jwtManager := auth.NewJWTManager("router-test-secret", time.Hour)

	cfg := RouterConfig{
		UserHandler:        handler.NewUserHandler(&stubUserService{}, jwtManager),
		AccountHandler:     handler.NewAccountHandler(&stubAccountService{}),
		TransactionHandler: handler.NewTransactionHandler(&stubTransactionService{}),
		LoanHandler:        handler.NewLoanHandler(&stubLoanService{}),
		BranchHandler:      handler.NewBranchHandler(&stubBranchService{}),
		StatisticHandler:   handler.NewStatisticHandler(&stubStatisticService{}),
		AdminHandler:       handler.NewAdminHandler(&stubSweepService{}),
		HealthHandler:      &handler.HealthHandler{},
		JWTManager:         jwtManager,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubUserService struct{}

func (stubUserService) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	return &domain.User{ID: "user-1", Role: domain.RoleUser}, nil
}

func (stubUserService) CreateStaff(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	return &domain.User{ID: "staff-1", Role: domain.RoleBranchManager, Staff: true}, nil
}

func (stubUserService) Login(ctx context.Context, mobile, password string) (*domain.User, error) {
	return &domain.User{ID: "user-1", Role: domain.RoleUser}, nil
}

func (stubUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id, Role: domain.RoleUser}, nil
}

func (stubUserService) UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*domain.User, error) {
	return &domain.User{ID: input.UserID}, nil
}

func (stubUserService) ListStaff(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return []*domain.User{}, nil
}

type stubAccountService struct{}

func (stubAccountService) OpenAccount(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error) {
	return &domain.Account{ID: "acc-1"}, nil
}

func (stubAccountService) CloseAccount(ctx context.Context, input usecase.CloseAccountInput) error {
	return nil
}

func (stubAccountService) GetAccount(ctx context.Context, ownerID, id string) (*domain.Account, error) {
	return &domain.Account{ID: id}, nil
}

func (stubAccountService) GetAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	return &domain.Account{Number: number}, nil
}

func (stubAccountService) ListAccounts(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

type stubTransactionService struct{}

func (stubTransactionService) ApplyTransaction(ctx context.Context, input usecase.ApplyTransactionInput) (*domain.Transaction, error) {
	return &domain.Transaction{ID: "txn-1"}, nil
}

func (stubTransactionService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return &domain.Transaction{ID: id}, nil
}

func (stubTransactionService) ListTransactionsByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error) {
	return []*domain.Transaction{}, nil
}

func (stubTransactionService) ListTransactions(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	return []*domain.Transaction{}, nil
}

type stubLoanService struct{}

func (stubLoanService) CreateLoan(ctx context.Context, input usecase.CreateLoanInput) (*domain.Loan, error) {
	return &domain.Loan{ID: "loan-1"}, nil
}

func (stubLoanService) GetLoan(ctx context.Context, id string) (*domain.Loan, []*domain.Installment, error) {
	return &domain.Loan{ID: id}, []*domain.Installment{}, nil
}

func (stubLoanService) ListLoansByApplicant(ctx context.Context, applicantID string, limit, offset int) ([]*domain.Loan, error) {
	return []*domain.Loan{}, nil
}

type stubBranchService struct{}

func (stubBranchService) CreateBank(ctx context.Context, input usecase.CreateBankInput) (*domain.Bank, error) {
	return &domain.Bank{ID: "bank-1"}, nil
}

func (stubBranchService) CreateBranch(ctx context.Context, input usecase.CreateBranchInput) (*domain.Branch, error) {
	return &domain.Branch{ID: "branch-1"}, nil
}

func (stubBranchService) GetBranch(ctx context.Context, id string) (*domain.Branch, error) {
	return &domain.Branch{ID: id}, nil
}

func (stubBranchService) ListBranches(ctx context.Context, bankID string, limit, offset int) ([]*domain.Branch, error) {
	return []*domain.Branch{}, nil
}

func (stubBranchService) GetBankByOwner(ctx context.Context, ownerID string) (*domain.Bank, error) {
	return &domain.Bank{ID: "bank-1", OwnerID: ownerID}, nil
}

type stubStatisticService struct{}

func (stubStatisticService) GetByUser(ctx context.Context, userID string) (*domain.UserStatistic, error) {
	return &domain.UserStatistic{UserID: userID}, nil
}

func (stubStatisticService) List(ctx context.Context, filter domain.StatisticFilter) ([]*domain.UserStatistic, error) {
	return []*domain.UserStatistic{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}

type stubSweepService struct{}

func (stubSweepService) AccrueInterest(ctx context.Context) error        { return nil }
func (stubSweepService) SettleDueInstallments(ctx context.Context) error { return nil }
func (stubSweepService) CloseFullyPaidLoans(ctx context.Context) error   { return nil }

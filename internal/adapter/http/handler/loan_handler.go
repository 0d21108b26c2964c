package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/radkal2/bonusbank/internal/adapter/http/dto"
	"github.com/radkal2/bonusbank/internal/adapter/http/middleware"
	"github.com/radkal2/bonusbank/internal/domain"
	"github.com/radkal2/bonusbank/internal/usecase"
)

// LoanService defines the behavior needed by LoanHandler.
type LoanService interface {
	CreateLoan(ctx context.Context, input usecase.CreateLoanInput) (*domain.Loan, error)
	GetLoan(ctx context.Context, id string) (*domain.Loan, []*domain.Installment, error)
	ListLoansByApplicant(ctx context.Context, applicantID string, limit, offset int) ([]*domain.Loan, error)
}

// LoanHandler handles loan-related HTTP requests.
type LoanHandler struct {
	loanUC LoanService
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loanUC LoanService) *LoanHandler {
	return &LoanHandler{loanUC: loanUC}
}

// Create grants a loan to the caller.
func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	loan, err := h.loanUC.CreateLoan(r.Context(), req.ToUseCaseInput(caller.ID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create loan", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.LoanFromDomain(loan))
}

// Get retrieves a loan with its installment schedule.
func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	loan, installments, err := h.loanUC.GetLoan(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get loan", err.Error())
		return
	}

	// A customer can only see their own loans.
	if loan.ApplicantID != caller.ID && !caller.Staff && caller.Role == domain.RoleUser {
		writeError(w, http.StatusNotFound, "failed to get loan", domain.ErrLoanNotFound.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoanDetailResponse{
		Loan:         dto.LoanFromDomain(loan),
		Installments: dto.InstallmentsFromDomain(installments),
	})
}

// List lists the caller's loans.
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	loans, err := h.loanUC.ListLoansByApplicant(r.Context(), caller.ID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list loans", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoansFromDomain(loans))
}

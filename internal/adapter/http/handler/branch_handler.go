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

// BranchService defines the behavior needed by BranchHandler.
type BranchService interface {
	CreateBank(ctx context.Context, input usecase.CreateBankInput) (*domain.Bank, error)
	CreateBranch(ctx context.Context, input usecase.CreateBranchInput) (*domain.Branch, error)
	GetBranch(ctx context.Context, id string) (*domain.Branch, error)
	ListBranches(ctx context.Context, bankID string, limit, offset int) ([]*domain.Branch, error)
	GetBankByOwner(ctx context.Context, ownerID string) (*domain.Bank, error)
}

// BranchHandler handles bank and branch management HTTP requests.
type BranchHandler struct {
	branchUC BranchService
}

// NewBranchHandler creates a new BranchHandler.
func NewBranchHandler(branchUC BranchService) *BranchHandler {
	return &BranchHandler{branchUC: branchUC}
}

// CreateBank creates a bank owned by the caller.
func (h *BranchHandler) CreateBank(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateBankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bank, err := h.branchUC.CreateBank(r.Context(), usecase.CreateBankInput{
		Name:    req.Name,
		OwnerID: caller.ID,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create bank", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BankFromDomain(bank))
}

// GetMyBank returns the bank owned by the caller.
func (h *BranchHandler) GetMyBank(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	bank, err := h.branchUC.GetBankByOwner(r.Context(), caller.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get bank", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BankFromDomain(bank))
}

// CreateBranch creates a branch of an existing bank.
func (h *BranchHandler) CreateBranch(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	branch, err := h.branchUC.CreateBranch(r.Context(), usecase.CreateBranchInput{
		Name:      req.Name,
		BankID:    req.BankID,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create branch", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BranchFromDomain(branch))
}

// GetBranch retrieves a branch by ID.
func (h *BranchHandler) GetBranch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing branch ID", "")
		return
	}

	branch, err := h.branchUC.GetBranch(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get branch", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BranchFromDomain(branch))
}

// ListBranches lists branches of a bank.
func (h *BranchHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	bankID := r.URL.Query().Get("bank_id")
	if bankID == "" {
		writeError(w, http.StatusBadRequest, "missing bank_id", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	branches, err := h.branchUC.ListBranches(r.Context(), bankID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list branches", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BranchesFromDomain(branches))
}

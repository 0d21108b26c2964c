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

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	OpenAccount(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error)
	CloseAccount(ctx context.Context, input usecase.CloseAccountInput) error
	GetAccount(ctx context.Context, ownerID, id string) (*domain.Account, error)
	GetAccountByNumber(ctx context.Context, number string) (*domain.Account, error)
	ListAccounts(ctx context.Context, ownerID string) ([]*domain.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Open opens an account for the caller at the requested branch.
func (h *AccountHandler) Open(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.OpenAccount(r.Context(), usecase.OpenAccountInput{
		OwnerID:  caller.ID,
		BranchID: req.BranchID,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to open account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Close closes the caller's active account. The request must name the
// branch the account was opened at.
func (h *AccountHandler) Close(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CloseAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	err := h.accountUC.CloseAccount(r.Context(), usecase.CloseAccountInput{
		OwnerID:  caller.ID,
		BranchID: req.BranchID,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to close account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// Get retrieves one of the caller's accounts by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), caller.ID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// GetByNumber resolves an account by its 16-digit number. Staff only;
// the route is scoped in the router.
func (h *AccountHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "missing account number", "")
		return
	}

	account, err := h.accountUC.GetAccountByNumber(r.Context(), number)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists the caller's active accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	accounts, err := h.accountUC.ListAccounts(r.Context(), caller.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

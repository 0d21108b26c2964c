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

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	ApplyTransaction(ctx context.Context, input usecase.ApplyTransactionInput) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactionsByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error)
}

// TransactionHandler handles money movement HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Apply applies a money movement on behalf of the caller.
func (h *TransactionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.ApplyTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transactionUC.ApplyTransaction(r.Context(), req.ToUseCaseInput(caller.ID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to apply transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Get retrieves one of the caller's transactions by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := h.transactionUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	// A customer can only see their own audit records.
	if txn.OwnerID != caller.ID && !caller.Staff && caller.Role == domain.RoleUser {
		writeError(w, http.StatusNotFound, "failed to get transaction", domain.ErrTransactionNotFound.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// List lists the caller's transactions, newest first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	transactions, err := h.transactionUC.ListTransactionsByOwner(r.Context(), caller.ID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(transactions))
}

// Search lists transactions across all customers for staff reporting.
// Supports filtering by owner mobile, account and kind.
func (h *TransactionHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter := usecase.TransactionFilter{
		OwnerMobile:   r.URL.Query().Get("mobile"),
		SrcAccountID:  r.URL.Query().Get("src_account_id"),
		DestAccountID: r.URL.Query().Get("dest_account_id"),
		Kind:          domain.TransactionKind(r.URL.Query().Get("kind")),
		Limit:         parseIntQuery(r, "limit", 20),
		Offset:        parseIntQuery(r, "offset", 0),
	}

	transactions, err := h.transactionUC.ListTransactions(r.Context(), filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to search transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(transactions))
}

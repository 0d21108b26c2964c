package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SweepService defines the settlement sweeps an operator can trigger by hand.
type SweepService interface {
	AccrueInterest(ctx context.Context) error
	SettleDueInstallments(ctx context.Context) error
	CloseFullyPaidLoans(ctx context.Context) error
}

// AdminHandler exposes operator-only maintenance endpoints.
type AdminHandler struct {
	settlementUC SweepService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(settlementUC SweepService) *AdminHandler {
	return &AdminHandler{settlementUC: settlementUC}
}

// RunSweep triggers one sweep immediately instead of waiting for the next
// scheduler tick. The sweeps carry their own exactly-once guards, so a
// manual run racing a scheduled one is harmless.
func (h *AdminHandler) RunSweep(w http.ResponseWriter, r *http.Request) {
	job := chi.URLParam(r, "job")

	var err error
	switch job {
	case "interest":
		err = h.settlementUC.AccrueInterest(r.Context())
	case "settlement":
		if err = h.settlementUC.SettleDueInstallments(r.Context()); err == nil {
			err = h.settlementUC.CloseFullyPaidLoans(r.Context())
		}
	default:
		writeError(w, http.StatusBadRequest, "unknown sweep", "valid jobs: interest, settlement")
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, "sweep failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"job": job, "status": "completed"})
}

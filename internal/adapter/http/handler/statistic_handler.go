package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/radkal2/bonusbank/internal/adapter/http/dto"
	"github.com/radkal2/bonusbank/internal/adapter/http/middleware"
	"github.com/radkal2/bonusbank/internal/domain"
)

// StatisticService defines the behavior needed by StatisticHandler.
type StatisticService interface {
	GetByUser(ctx context.Context, userID string) (*domain.UserStatistic, error)
	List(ctx context.Context, filter domain.StatisticFilter) ([]*domain.UserStatistic, error)
}

// StatisticHandler serves per-user statistic reports.
type StatisticHandler struct {
	statisticUC StatisticService
}

// NewStatisticHandler creates a new StatisticHandler.
func NewStatisticHandler(statisticUC StatisticService) *StatisticHandler {
	return &StatisticHandler{statisticUC: statisticUC}
}

// Mine returns the caller's statistic row.
func (h *StatisticHandler) Mine(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	stat, err := h.statisticUC.GetByUser(r.Context(), caller.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get statistic", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatisticFromDomain(stat))
}

// List lists statistic rows for staff reporting. Supports filtering by
// mobile and account_closed.
func (h *StatisticHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.StatisticFilter{
		Mobile: r.URL.Query().Get("mobile"),
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	}

	if raw := r.URL.Query().Get("account_closed"); raw != "" {
		closed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid account_closed", err.Error())
			return
		}
		filter.AccountClosed = &closed
	}

	stats, err := h.statisticUC.List(r.Context(), filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list statistics", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatisticsFromDomain(stats))
}

package usecase

import (
	"context"

	"github.com/radkal2/bonusbank/internal/domain"
)

// StatisticUseCase exposes the user statistics report.
type StatisticUseCase struct {
	statRepo StatisticRepository
}

// NewStatisticUseCase creates a new StatisticUseCase.
func NewStatisticUseCase(statRepo StatisticRepository) *StatisticUseCase {
	return &StatisticUseCase{statRepo: statRepo}
}

// GetByUser retrieves one user's statistic row.
func (uc *StatisticUseCase) GetByUser(ctx context.Context, userID string) (*domain.UserStatistic, error) {
	return uc.statRepo.GetByUser(ctx, userID)
}

// List is the staff statistics report.
func (uc *StatisticUseCase) List(ctx context.Context, filter domain.StatisticFilter) ([]*domain.UserStatistic, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.statRepo.List(ctx, filter)
}

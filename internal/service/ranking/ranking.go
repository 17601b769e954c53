package ranking

import (
	"context"
	"fmt"
	"pitch_backend/internal/model"
	"time"
)

// Daily Лучшие сессии, начатые сегодня
func (s *serv) Daily(ctx context.Context, limit int) ([]model.RankingRow, error) {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	if limit > MaxDailyLimit {
		limit = MaxDailyLimit
	}
	from, to := s.dayBounds()
	rows, err := s.rankingRepo.TopFinished(ctx, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("daily ranking: %w", err)
	}
	return rows, nil
}

// Top3 Подиум за сегодня
func (s *serv) Top3(ctx context.Context) ([]model.RankingRow, error) {
	return s.Daily(ctx, top3Limit)
}

// HallOfFame Лучшие сессии за все время
func (s *serv) HallOfFame(ctx context.Context) ([]model.RankingRow, error) {
	rows, err := s.rankingRepo.TopFinished(ctx, time.Time{}, time.Time{}, hallOfFameLimit)
	if err != nil {
		return nil, fmt.Errorf("hall of fame: %w", err)
	}
	return rows, nil
}

func (s *serv) Leaderboard(ctx context.Context) (*model.Leaderboard, error) {
	today, err := s.Daily(ctx, DefaultDailyLimit)
	if err != nil {
		return nil, err
	}
	hall, err := s.HallOfFame(ctx)
	if err != nil {
		return nil, err
	}
	return &model.Leaderboard{Today: today, HallOfFame: hall}, nil
}

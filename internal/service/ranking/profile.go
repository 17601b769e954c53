package ranking

import (
	"context"
	"fmt"
	"pitch_backend/internal/model"
)

// Profile Статистика игрока и его последние завершенные партии
func (s *serv) Profile(ctx context.Context, userID int64) (*model.Profile, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.sessionRepo.ListFinishedByUser(ctx, userID, recentGamesLimit)
	if err != nil {
		return nil, fmt.Errorf("recent games: %w", err)
	}
	return &model.Profile{User: *user, RecentGames: recent}, nil
}

// RecordFinish Учитывает завершенную партию в статистике игрока.
// Вызывается внутри транзакции завершения
func (s *serv) RecordFinish(ctx context.Context, userID int64, finalProfitRate float64) error {
	if err := s.userRepo.RecordFinish(ctx, userID, finalProfitRate); err != nil {
		return err
	}
	s.log.Debug("stats recorded", "user_id", userID, "final_profit_rate", finalProfitRate)
	return nil
}

package service

import (
	"context"
	"pitch_backend/internal/model"
)

type GameService interface {
	Start(ctx context.Context, user model.User) (*model.Session, error)
	Session(ctx context.Context, userID, sessionID int64) (*model.SessionView, error)
	CurrentRound(ctx context.Context, userID, sessionID int64) (*model.RoundView, error)
	Invest(ctx context.Context, userID, sessionID int64, req model.InvestRequest) (*model.InvestResult, error)
	Enchant(ctx context.Context, userID, sessionID int64) (*model.RoundView, error)
	Reroll(ctx context.Context, userID, sessionID int64) (*model.Session, error)
	Investment(ctx context.Context, userID, investmentID int64) (*model.InvestmentView, error)
}

type RankingService interface {
	Daily(ctx context.Context, limit int) ([]model.RankingRow, error)
	Top3(ctx context.Context) ([]model.RankingRow, error)
	HallOfFame(ctx context.Context) ([]model.RankingRow, error)
	Leaderboard(ctx context.Context) (*model.Leaderboard, error)
	Profile(ctx context.Context, userID int64) (*model.Profile, error)
	StatsRecorder
}

// StatsRecorder Получает уведомление о завершении партии
type StatsRecorder interface {
	RecordFinish(ctx context.Context, userID int64, finalProfitRate float64) error
}

// IdeaGenerator Питчи и реакции персонажей. Сбои маскируются заглушками
type IdeaGenerator interface {
	GenerateIdea(ctx context.Context, ch model.Character) model.Idea
	GenerateResult(ctx context.Context, ch model.Character, ideaTitle string, success bool) model.Narrative
}

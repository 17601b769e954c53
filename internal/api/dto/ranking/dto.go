package ranking

import (
	"pitch_backend/internal/api/dto/game"
	"time"
)

type RowResponse struct {
	Rank            int       `json:"rank"`
	SessionID       int64     `json:"session_id"`
	UserID          int64     `json:"user_id"`
	Nickname        string    `json:"nickname"`
	FinalCapital    int64     `json:"final_capital"`
	FinalProfitRate float64   `json:"final_profit_rate"`
	CreatedAt       time.Time `json:"created_at"`
}

type LeaderboardResponse struct {
	Today      []RowResponse `json:"today"`
	HallOfFame []RowResponse `json:"hall_of_fame"`
}

type ProfileResponse struct {
	UserID         int64                  `json:"user_id"`
	Nickname       string                 `json:"nickname"`
	TotalGames     int                    `json:"total_games"`
	BestProfitRate *float64               `json:"best_profit_rate"` // null до первой завершенной игры
	RecentGames    []game.SessionResponse `json:"recent_games"`
}

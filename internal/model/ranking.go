package model

import "time"

// RankingRow Строка рейтинга по завершенной сессии
type RankingRow struct {
	Rank            int
	SessionID       int64
	UserID          int64
	Nickname        string
	FinalCapital    int64
	FinalProfitRate float64
	CreatedAt       time.Time
}

// Leaderboard Рейтинг за сегодня и зал славы
type Leaderboard struct {
	Today      []RankingRow
	HallOfFame []RankingRow
}

package converter

import (
	"pitch_backend/internal/api/dto/game"
	"pitch_backend/internal/api/dto/ranking"
	"pitch_backend/internal/model"
)

func ToRankingRows(rows []model.RankingRow) []ranking.RowResponse {
	result := make([]ranking.RowResponse, len(rows))
	for i, r := range rows {
		result[i] = ranking.RowResponse{
			Rank:            r.Rank,
			SessionID:       r.SessionID,
			UserID:          r.UserID,
			Nickname:        r.Nickname,
			FinalCapital:    r.FinalCapital,
			FinalProfitRate: r.FinalProfitRate,
			CreatedAt:       r.CreatedAt,
		}
	}
	return result
}

func ToLeaderboardResponse(lb model.Leaderboard) ranking.LeaderboardResponse {
	return ranking.LeaderboardResponse{
		Today:      ToRankingRows(lb.Today),
		HallOfFame: ToRankingRows(lb.HallOfFame),
	}
}

func ToProfileResponse(p model.Profile) ranking.ProfileResponse {
	recent := make([]game.SessionResponse, len(p.RecentGames))
	for i, s := range p.RecentGames {
		recent[i] = ToSessionResponse(s)
	}
	return ranking.ProfileResponse{
		UserID:         p.User.ID,
		Nickname:       p.User.Nickname,
		TotalGames:     p.User.TotalGames,
		BestProfitRate: p.User.BestProfitRate,
		RecentGames:    recent,
	}
}

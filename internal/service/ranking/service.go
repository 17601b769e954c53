package ranking

import (
	"log/slog"
	"pitch_backend/internal/repository"
	"pitch_backend/internal/service"
	"time"
)

const (
	DefaultDailyLimit = 20
	MaxDailyLimit     = 100
	top3Limit         = 3
	hallOfFameLimit   = 10
	recentGamesLimit  = 10
)

type serv struct {
	rankingRepo repository.RankingRepository
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	loc         *time.Location
	now         func() time.Time
	log         *slog.Logger
}

// NewRankingService Рейтинги и статистика игроков. Сутки для дневного
// рейтинга считаются в часовом поясе loc
func NewRankingService(
	rankingRepo repository.RankingRepository,
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	loc *time.Location,
	logger *slog.Logger,
) service.RankingService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &serv{
		rankingRepo: rankingRepo,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		loc:         loc,
		now:         time.Now,
		log:         logger,
	}
}

// dayBounds Начало текущих суток и начало следующих
func (s *serv) dayBounds() (time.Time, time.Time) {
	now := s.now().In(s.loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	return from, from.AddDate(0, 0, 1)
}

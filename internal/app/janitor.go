package app

import (
	"context"
	"errors"
	"log/slog"
	"pitch_backend/internal/model"
	"pitch_backend/internal/repository"
	"time"
)

// runRoundJanitor Периодически убирает раунды сессий, которые уже завершены или удалены.
// Раунд активной сессии не трогается, сколько бы он ни лежал
func runRoundJanitor(
	ctx context.Context,
	rounds repository.RoundRepository,
	sessions repository.SessionRepository,
	age time.Duration,
	logger *slog.Logger,
) {
	interval := age / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := sweepRounds(ctx, rounds, sessions, now, age, logger); n > 0 {
				logger.Info("orphaned rounds removed", "count", n)
			}
		}
	}
}

// sweepRounds Удаляет старые раунды завершенных и несуществующих сессий
func sweepRounds(
	ctx context.Context,
	rounds repository.RoundRepository,
	sessions repository.SessionRepository,
	now time.Time,
	age time.Duration,
	logger *slog.Logger,
) int {
	removed := 0
	for _, id := range rounds.Stale(now, age) {
		sess, err := sessions.Get(ctx, id)
		switch {
		case errors.Is(err, model.ErrSessionNotFound):
		case err != nil:
			logger.Warn("round sweep: load session", "session_id", id, "err", err)
			continue
		case !sess.IsFinished:
			continue
		}
		rounds.Delete(id)
		removed++
	}
	return removed
}

package repository

import (
	"context"
	"pitch_backend/internal/model"
	"time"
)

// TxManager Выполняет fn в одной транзакции. Реализуется trm.Manager
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id int64) (*model.Session, error)
	GetForUpdate(ctx context.Context, id int64) (*model.Session, error)
	GetActiveByUser(ctx context.Context, userID int64) (*model.Session, error)
	Update(ctx context.Context, session *model.Session) error
	ListFinishedByUser(ctx context.Context, userID int64, limit int) ([]model.Session, error)
}

type InvestmentRepository interface {
	Create(ctx context.Context, investment *model.Investment) error
	Get(ctx context.Context, id int64) (*model.Investment, error)
	ListBySession(ctx context.Context, sessionID int64) ([]model.Investment, error)
}

type UserRepository interface {
	Ensure(ctx context.Context, id int64, nickname string) error
	Get(ctx context.Context, id int64) (*model.User, error)
	RecordFinish(ctx context.Context, id int64, profitRate float64) error
}

type RankingRepository interface {
	// TopFinished Завершенные сессии по убыванию итогового процента.
	// Нулевые from/to не ограничивают период
	TopFinished(ctx context.Context, from, to time.Time, limit int) ([]model.RankingRow, error)
}

// RoundRepository Хранилище текущих раундов. Только в памяти процесса
type RoundRepository interface {
	Get(sessionID int64) (model.Round, bool)
	Put(round model.Round)
	Delete(sessionID int64)
	// Stale Сессии, чьи раунды старше age
	Stale(now time.Time, age time.Duration) []int64
}

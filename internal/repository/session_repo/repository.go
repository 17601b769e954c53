package session_repo

import (
	"context"
	"errors"
	"fmt"
	"pitch_backend/internal/model"
	"pitch_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table              = "game_sessions"
	colID              = "id"
	colUserID          = "user_id"
	colInitialCapital  = "initial_capital"
	colCurrentCapital  = "current_capital"
	colRemainingChance = "remaining_chances"
	colRemainingReroll = "remaining_rerolls"
	colIsFinished      = "is_finished"
	colFinalProfitRate = "final_profit_rate"
	colCreatedAt       = "created_at"

	// Код нарушения уникальности в Postgres
	uniqueViolation = "23505"
)

var columns = []string{
	colID, colUserID, colInitialCapital, colCurrentCapital, colRemainingChance,
	colRemainingReroll, colIsFinished, colFinalProfitRate, colCreatedAt,
}

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewSessionRepository(dbc *pgxpool.Pool) repository.SessionRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// Create - создает сессию, заполняет ID и время создания.
// Возвращает model.ErrActiveSessionExists при гонке двух стартов
func (r *repo) Create(ctx context.Context, s *model.Session) error {
	query := sq.Insert(table).
		Columns(colUserID, colInitialCapital, colCurrentCapital, colRemainingChance, colRemainingReroll).
		Values(s.UserID, s.InitialCapital, s.CurrentCapital, s.RemainingChances, s.RemainingRerolls).
		Suffix("RETURNING " + colID + ", " + colCreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrActiveSessionExists
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Get - сессия по ID
func (r *repo) Get(ctx context.Context, id int64) (*model.Session, error) {
	return r.getOne(ctx, sq.Select(columns...).From(table).Where(sq.Eq{colID: id}))
}

// GetForUpdate - сессия по ID с блокировкой строки до конца транзакции
func (r *repo) GetForUpdate(ctx context.Context, id int64) (*model.Session, error) {
	return r.getOne(ctx, sq.Select(columns...).From(table).Where(sq.Eq{colID: id}).Suffix("FOR UPDATE"))
}

// GetActiveByUser - незавершенная сессия пользователя
func (r *repo) GetActiveByUser(ctx context.Context, userID int64) (*model.Session, error) {
	return r.getOne(ctx, sq.Select(columns...).
		From(table).
		Where(sq.Eq{colUserID: userID, colIsFinished: false}).
		OrderBy(colID).
		Limit(1))
}

// Update - сохраняет изменяемые поля сессии
func (r *repo) Update(ctx context.Context, s *model.Session) error {
	query := sq.Update(table).
		Set(colCurrentCapital, s.CurrentCapital).
		Set(colRemainingChance, s.RemainingChances).
		Set(colRemainingReroll, s.RemainingRerolls).
		Set(colIsFinished, s.IsFinished).
		Set(colFinalProfitRate, s.FinalProfitRate).
		Where(sq.Eq{colID: s.ID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if res.RowsAffected() == 0 {
		return model.ErrSessionNotFound
	}
	return nil
}

// ListFinishedByUser - последние завершенные сессии пользователя
func (r *repo) ListFinishedByUser(ctx context.Context, userID int64, limit int) ([]model.Session, error) {
	query := sq.Select(columns...).
		From(table).
		Where(sq.Eq{colUserID: userID, colIsFinished: true}).
		OrderBy(colCreatedAt+" DESC", colID+" DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *repo) getOne(ctx context.Context, query sq.SelectBuilder) (*model.Session, error) {
	sqlStr, args, err := query.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	s, err := scanSession(r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("select session: %w", err)
	}
	return s, nil
}

func scanSession(row pgx.Row) (*model.Session, error) {
	var s model.Session
	err := row.Scan(
		&s.ID, &s.UserID, &s.InitialCapital, &s.CurrentCapital, &s.RemainingChances,
		&s.RemainingRerolls, &s.IsFinished, &s.FinalProfitRate, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

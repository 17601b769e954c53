package user_repo

import (
	"context"
	"errors"
	"fmt"
	"pitch_backend/internal/model"
	"pitch_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table             = "users"
	colID             = "id"
	colNickname       = "nickname"
	colTotalGames     = "total_games"
	colBestProfitRate = "best_profit_rate"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc *pgxpool.Pool) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// Ensure - создает пользователя, если его еще нет, и обновляет никнейм.
// Учетные данные хранятся вне этого сервиса
func (r *repo) Ensure(ctx context.Context, id int64, nickname string) error {
	query := sq.Insert(table).
		Columns(colID, colNickname).
		Values(id, nickname).
		Suffix("ON CONFLICT (" + colID + ") DO UPDATE SET " + colNickname + " = EXCLUDED." + colNickname).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

// Get - пользователь со статистикой
func (r *repo) Get(ctx context.Context, id int64) (*model.User, error) {
	query := sq.Select(colID, colNickname, colTotalGames, colBestProfitRate).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user model.User
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&user.ID, &user.Nickname, &user.TotalGames, &user.BestProfitRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &user, nil
}

// RecordFinish - учитывает завершенную партию: счетчик игр +1,
// лучший результат только растет. GREATEST игнорирует NULL
func (r *repo) RecordFinish(ctx context.Context, id int64, profitRate float64) error {
	query := sq.Update(table).
		Set(colTotalGames, sq.Expr(colTotalGames+" + 1")).
		Set(colBestProfitRate, sq.Expr("GREATEST("+colBestProfitRate+", ?::double precision)", profitRate)).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("record finish: %w", err)
	}
	if res.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

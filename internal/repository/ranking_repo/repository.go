package ranking_repo

import (
	"context"
	"fmt"
	"pitch_backend/internal/model"
	"pitch_backend/internal/repository"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewRankingRepository(dbc *pgxpool.Pool) repository.RankingRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// TopFinished - завершенные сессии по убыванию итогового процента,
// при равенстве раньше созданная выше
func (r *repo) TopFinished(ctx context.Context, from, to time.Time, limit int) ([]model.RankingRow, error) {
	query := sq.Select("s.id", "s.user_id", "u.nickname", "s.current_capital", "s.final_profit_rate", "s.created_at").
		From("game_sessions s").
		Join("users u ON u.id = s.user_id").
		Where(sq.Eq{"s.is_finished": true}).
		OrderBy("s.final_profit_rate DESC", "s.id ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	if !from.IsZero() {
		query = query.Where(sq.GtOrEq{"s.created_at": from})
	}
	if !to.IsZero() {
		query = query.Where(sq.Lt{"s.created_at": to})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("select ranking: %w", err)
	}
	defer rows.Close()

	var out []model.RankingRow
	for rows.Next() {
		var row model.RankingRow
		if err := rows.Scan(&row.SessionID, &row.UserID, &row.Nickname, &row.FinalCapital, &row.FinalProfitRate, &row.CreatedAt); err != nil {
			return nil, err
		}
		row.Rank = len(out) + 1
		out = append(out, row)
	}
	return out, rows.Err()
}

package investment_repo

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
	table            = "investments"
	colID            = "id"
	colSessionID     = "session_id"
	colCharacterName = "character_name"
	colIdeaTitle     = "idea_title"
	colIdeaDesc      = "idea_description"
	colInvestAmount  = "invest_amount"
	colIsSuccess     = "is_success"
	colProfitRate    = "profit_rate"
	colSystemMsg     = "result_system_msg"
	colReaction      = "result_character_reaction"
	colCreatedAt     = "created_at"
)

var columns = []string{
	colID, colSessionID, colCharacterName, colIdeaTitle, colIdeaDesc, colInvestAmount,
	colIsSuccess, colProfitRate, colSystemMsg, colReaction, colCreatedAt,
}

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewInvestmentRepository(dbc *pgxpool.Pool) repository.InvestmentRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// Create - добавляет запись об инвестиции. Записи только добавляются
func (r *repo) Create(ctx context.Context, inv *model.Investment) error {
	query := sq.Insert(table).
		Columns(colSessionID, colCharacterName, colIdeaTitle, colIdeaDesc, colInvestAmount,
			colIsSuccess, colProfitRate, colSystemMsg, colReaction).
		Values(inv.SessionID, inv.CharacterName, inv.IdeaTitle, inv.IdeaDescription, inv.InvestAmount,
			inv.IsSuccess, inv.ProfitRate, inv.ResultSystemMsg, inv.ResultCharacterReaction).
		Suffix("RETURNING " + colID + ", " + colCreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert investment: %w", err)
	}
	return nil
}

// Get - инвестиция по ID
func (r *repo) Get(ctx context.Context, id int64) (*model.Investment, error) {
	query := sq.Select(columns...).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	inv, err := scanInvestment(r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrInvestmentNotFound
		}
		return nil, fmt.Errorf("select investment: %w", err)
	}
	return inv, nil
}

// ListBySession - все инвестиции сессии в порядке создания
func (r *repo) ListBySession(ctx context.Context, sessionID int64) ([]model.Investment, error) {
	query := sq.Select(columns...).
		From(table).
		Where(sq.Eq{colSessionID: sessionID}).
		OrderBy(colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()

	var out []model.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

func scanInvestment(row pgx.Row) (*model.Investment, error) {
	var inv model.Investment
	err := row.Scan(
		&inv.ID, &inv.SessionID, &inv.CharacterName, &inv.IdeaTitle, &inv.IdeaDescription,
		&inv.InvestAmount, &inv.IsSuccess, &inv.ProfitRate, &inv.ResultSystemMsg,
		&inv.ResultCharacterReaction, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

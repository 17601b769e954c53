package game

import (
	"context"
	"errors"
	"pitch_backend/internal/model"
	"unicode/utf8"
)

const (
	maxNicknameLen  = 20
	maxIdeaTitleLen = 100

	unknownCharacterKey = "unknown"
)

// Investment Результат инвестиции для экрана результата
func (s *serv) Investment(ctx context.Context, userID, investmentID int64) (*model.InvestmentView, error) {
	inv, err := s.investmentRepo.Get(ctx, investmentID)
	if err != nil {
		return nil, err
	}

	sess, err := s.ownedSession(ctx, userID, inv.SessionID)
	if errors.Is(err, model.ErrSessionNotFound) {
		return nil, model.ErrInvestmentNotFound
	}
	if err != nil {
		return nil, err
	}

	key, ok := s.catalog.KeyByName(inv.CharacterName)
	if !ok {
		key = unknownCharacterKey
	}

	return &model.InvestmentView{Investment: *inv, Session: *sess, CharacterKey: key}, nil
}

// truncate Обрезает строку до limit символов под размер колонки
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit])
}

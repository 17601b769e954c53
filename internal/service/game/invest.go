package game

import (
	"context"
	"fmt"
	"pitch_backend/internal/model"
	"pitch_backend/pkg/rng"
)

// Invest Ставка на текущий раунд. Исход, запись инвестиции, списание шанса
// и проверка завершения выполняются атомарно
func (s *serv) Invest(ctx context.Context, userID, sessionID int64, req model.InvestRequest) (*model.InvestResult, error) {
	unlock := s.sessionLocks.Lock(sessionID)
	defer unlock()

	sess, err := s.activeSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	round, err := s.pendingRound(sess.ID, req.RoundID)
	if err != nil {
		return nil, err
	}
	if err := s.validateStake(req.Amount, sess.CurrentCapital); err != nil {
		return nil, err
	}

	success, roi := s.resolve(round)
	profit := -req.Amount
	if success {
		profit = floorDiv(req.Amount*int64(roi), 100)
	}
	narrative := s.generator.GenerateResult(ctx, round.Character, round.Idea.Title, success)

	inv := &model.Investment{
		SessionID:               sess.ID,
		CharacterName:           round.Character.Name,
		IdeaTitle:               truncate(round.Idea.Title, maxIdeaTitleLen),
		IdeaDescription:         round.Idea.Description,
		InvestAmount:            req.Amount,
		IsSuccess:               success,
		ProfitRate:              roi,
		ResultSystemMsg:         narrative.SystemMsg,
		ResultCharacterReaction: narrative.Reaction,
	}

	var updated *model.Session
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		locked, err := s.lockSession(txCtx, sess)
		if err != nil {
			return err
		}

		locked.CurrentCapital += profit
		locked.RemainingChances--

		if err := s.investmentRepo.Create(txCtx, inv); err != nil {
			return err
		}
		if _, err := s.finishIfOver(txCtx, locked); err != nil {
			return err
		}
		if err := s.sessionRepo.Update(txCtx, locked); err != nil {
			return err
		}
		updated = locked
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("invest: %w", err)
	}

	s.roundRepo.Delete(sess.ID)

	s.log.Info("investment resolved",
		"session_id", sess.ID,
		"investment_id", inv.ID,
		"character", round.Character.Key,
		"amount", req.Amount,
		"success", success,
		"roi", roi,
		"capital", updated.CurrentCapital,
	)

	return &model.InvestResult{Investment: *inv, Session: *updated, Profit: profit}, nil
}

// validateStake Ставка от минимальной до всего капитала. Ставка всем капиталом
// разрешена, даже если он меньше минимальной
func (s *serv) validateStake(amount, capital int64) error {
	if amount <= 0 || amount > capital {
		return model.ErrInvalidStake
	}
	if amount < s.rules.MinStake && amount != capital {
		return model.ErrInvalidStake
	}
	return nil
}

// resolve Бросок на успех и ROI в процентах. При провале ROI -100
func (s *serv) resolve(round model.Round) (bool, int) {
	if s.rand.Float64() < round.SuccessProb {
		return true, rng.IntRange(s.rand, round.Character.MinROI, round.Character.MaxROI)
	}
	return false, -100
}

// floorDiv Деление с округлением вниз, в том числе для отрицательных
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

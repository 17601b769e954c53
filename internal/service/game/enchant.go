package game

import (
	"context"
	"fmt"
	"math"
	"pitch_backend/internal/model"
	"pitch_backend/pkg/rng"
)

// Enchant Платное усиление вероятности успеха текущего раунда, один раз на раунд
func (s *serv) Enchant(ctx context.Context, userID, sessionID int64) (*model.RoundView, error) {
	unlock := s.sessionLocks.Lock(sessionID)
	defer unlock()

	sess, err := s.activeSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	round, err := s.pendingRound(sess.ID, "")
	if err != nil {
		return nil, err
	}
	if round.Enchanted {
		return nil, model.ErrAlreadyEnchanted
	}
	if sess.CurrentCapital < s.rules.EnchantCost {
		return nil, model.ErrInsufficientCapital
	}

	boost := rng.IntRange(s.rand, s.rules.EnchantBoostMin, s.rules.EnchantBoostMax)

	var updated *model.Session
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		locked, err := s.lockSession(txCtx, sess)
		if err != nil {
			return err
		}
		locked.CurrentCapital -= s.rules.EnchantCost
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
		return nil, fmt.Errorf("enchant: %w", err)
	}

	round.SuccessProb = boostProb(round.SuccessProb, boost)
	round.Enchanted = true
	if updated.IsFinished {
		s.roundRepo.Delete(sess.ID)
	} else {
		s.roundRepo.Put(round)
	}

	s.log.Info("round enchanted",
		"session_id", sess.ID,
		"boost", boost,
		"success_prob", round.SuccessProb,
		"capital", updated.CurrentCapital,
	)

	return s.view(round, updated), nil
}

// boostProb Прибавляет boost процентных пунктов, не выше 1
func boostProb(prob float64, boost int) float64 {
	p := math.Min(1, prob+float64(boost)/100)
	return math.Round(p*1e9) / 1e9
}

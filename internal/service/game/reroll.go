package game

import (
	"context"
	"fmt"
	"pitch_backend/internal/model"
)

// Reroll Пропуск текущего раунда за одну попытку
func (s *serv) Reroll(ctx context.Context, userID, sessionID int64) (*model.Session, error) {
	unlock := s.sessionLocks.Lock(sessionID)
	defer unlock()

	sess, err := s.activeSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.RemainingRerolls <= 0 {
		return nil, model.ErrNoRerollsLeft
	}

	var updated *model.Session
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		locked, err := s.lockSession(txCtx, sess)
		if err != nil {
			return err
		}
		locked.RemainingRerolls--
		if err := s.sessionRepo.Update(txCtx, locked); err != nil {
			return err
		}
		updated = locked
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reroll: %w", err)
	}

	s.roundRepo.Delete(sess.ID)
	s.log.Info("round rerolled", "session_id", sess.ID, "rerolls_left", updated.RemainingRerolls)

	return updated, nil
}

package game

import (
	"context"
	"errors"
	"fmt"
	"pitch_backend/internal/model"
)

// Start Возвращает активную сессию пользователя или создает новую
func (s *serv) Start(ctx context.Context, user model.User) (*model.Session, error) {
	unlock := s.userLocks.Lock(user.ID)
	defer unlock()

	var res *model.Session
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Ensure(txCtx, user.ID, truncate(user.Nickname, maxNicknameLen)); err != nil {
			return err
		}

		active, err := s.sessionRepo.GetActiveByUser(txCtx, user.ID)
		if err == nil {
			res = active
			return nil
		}
		if !errors.Is(err, model.ErrSessionNotFound) {
			return err
		}

		sess := &model.Session{
			UserID:           user.ID,
			InitialCapital:   s.rules.StartCapital,
			CurrentCapital:   s.rules.StartCapital,
			RemainingChances: s.rules.StartChances,
			RemainingRerolls: s.rules.StartRerolls,
		}
		if err := s.sessionRepo.Create(txCtx, sess); err != nil {
			return err
		}
		res = sess
		return nil
	})
	if errors.Is(err, model.ErrActiveSessionExists) {
		// другой экземпляр успел создать сессию, уникальный индекс не дал создать вторую
		return s.sessionRepo.GetActiveByUser(ctx, user.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	s.log.Info("session started", "user_id", user.ID, "session_id", res.ID)
	return res, nil
}

// Session Сессия пользователя по ID и ее инвестиции по порядку
func (s *serv) Session(ctx context.Context, userID, sessionID int64) (*model.SessionView, error) {
	sess, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	history, err := s.investmentRepo.ListBySession(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("session history: %w", err)
	}
	return &model.SessionView{Session: *sess, Investments: history}, nil
}

func (s *serv) ownedSession(ctx context.Context, userID, sessionID int64) (*model.Session, error) {
	sess, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, model.ErrSessionNotFound
	}
	return sess, nil
}

// activeSession Сессия пользователя, на которой разрешены действия.
// Зависшую сессию (капитал кончился, но флаг не выставлен) завершает
func (s *serv) activeSession(ctx context.Context, userID, sessionID int64) (*model.Session, error) {
	sess, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.IsFinished {
		return nil, model.ErrSessionFinished
	}
	if sess.IsOver() {
		if err := s.finalize(ctx, sess); err != nil {
			return nil, err
		}
		return nil, model.ErrSessionFinished
	}
	return sess, nil
}

// finalize Завершает сессию, которая уже удовлетворяет условию конца
func (s *serv) finalize(ctx context.Context, snapshot *model.Session) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		locked, err := s.lockSession(txCtx, snapshot)
		if err != nil {
			return err
		}
		finished, err := s.finishIfOver(txCtx, locked)
		if err != nil || !finished {
			return err
		}
		return s.sessionRepo.Update(txCtx, locked)
	})
	if err != nil && !errors.Is(err, model.ErrSessionFinished) {
		return err
	}
	s.roundRepo.Delete(snapshot.ID)
	return nil
}

// lockSession Блокирует строку сессии и проверяет, что она не менялась с момента чтения
func (s *serv) lockSession(ctx context.Context, snapshot *model.Session) (*model.Session, error) {
	locked, err := s.sessionRepo.GetForUpdate(ctx, snapshot.ID)
	if err != nil {
		return nil, err
	}
	if locked.IsFinished {
		return nil, model.ErrSessionFinished
	}
	if locked.CurrentCapital != snapshot.CurrentCapital ||
		locked.RemainingChances != snapshot.RemainingChances ||
		locked.RemainingRerolls != snapshot.RemainingRerolls {
		return nil, model.ErrConcurrentUpdate
	}
	return locked, nil
}

// finishIfOver Проверка завершения после действия. На завершенной сессии ничего не делает.
// Статистика игрока обновляется ровно один раз, в той же транзакции
func (s *serv) finishIfOver(ctx context.Context, sess *model.Session) (bool, error) {
	if sess.IsFinished || !sess.IsOver() {
		return false, nil
	}
	if !sess.Finish() {
		return false, nil
	}
	if err := s.stats.RecordFinish(ctx, sess.UserID, *sess.FinalProfitRate); err != nil {
		return false, fmt.Errorf("record finish: %w", err)
	}
	s.log.Info("session finished",
		"session_id", sess.ID,
		"user_id", sess.UserID,
		"final_capital", sess.CurrentCapital,
		"final_profit_rate", *sess.FinalProfitRate,
	)
	return true, nil
}

package game

import (
	"context"
	"pitch_backend/internal/model"

	"github.com/google/uuid"
)

// CurrentRound Возвращает текущий раунд сессии или создает новый
func (s *serv) CurrentRound(ctx context.Context, userID, sessionID int64) (*model.RoundView, error) {
	unlock := s.sessionLocks.Lock(sessionID)
	defer unlock()

	sess, err := s.activeSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	round, ok := s.roundRepo.Get(sess.ID)
	if !ok {
		round = s.newRound(ctx, sess.ID)
		s.roundRepo.Put(round)
		s.log.Debug("round created", "session_id", sess.ID, "character", round.Character.Key, "round_id", round.ID)
	}
	return s.view(round, sess), nil
}

func (s *serv) newRound(ctx context.Context, sessionID int64) model.Round {
	ch := s.catalog.Select(s.rand)
	idea := s.generator.GenerateIdea(ctx, ch)
	return model.Round{
		ID:          uuid.New(),
		SessionID:   sessionID,
		Character:   ch,
		Idea:        idea,
		SuccessProb: ch.SuccessRate,
		CreatedAt:   s.now(),
	}
}

func (s *serv) view(round model.Round, sess *model.Session) *model.RoundView {
	return &model.RoundView{
		Round:      round,
		Session:    *sess,
		Tier:       model.TierOf(round.SuccessProb),
		CanEnchant: !round.Enchanted && !sess.IsFinished && sess.CurrentCapital >= s.rules.EnchantCost,
	}
}

// pendingRound Раунд, к которому относится действие игрока
func (s *serv) pendingRound(sessionID int64, roundID string) (model.Round, error) {
	round, ok := s.roundRepo.Get(sessionID)
	if !ok {
		return model.Round{}, model.ErrNoPendingRound
	}
	if roundID != "" && roundID != round.ID.String() {
		return model.Round{}, model.ErrRoundMismatch
	}
	return round, nil
}

package round_repo

import (
	"pitch_backend/internal/model"
	"sync"
	"time"
)

// RoundRepo Хранилище текущих раундов в памяти процесса.
// Раунд либо лежит целиком, либо его нет: запись и удаление атомарны
type RoundRepo struct {
	mtx    sync.RWMutex
	rounds map[int64]model.Round
}

// NewRoundRepository Конструктор пустого хранилища
func NewRoundRepository() *RoundRepo {
	return &RoundRepo{
		rounds: make(map[int64]model.Round),
	}
}

// Get Возвращает копию раунда сессии, если он есть
func (r *RoundRepo) Get(sessionID int64) (model.Round, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	round, ok := r.rounds[sessionID]
	return round, ok
}

// Put Заменяет раунд сессии целиком
func (r *RoundRepo) Put(round model.Round) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.rounds[round.SessionID] = round
}

// Delete Удаляет раунд сессии. Отсутствие раунда не ошибка
func (r *RoundRepo) Delete(sessionID int64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.rounds, sessionID)
}

// Stale ID сессий, чьи раунды лежат дольше age. Сами раунды не трогает
func (r *RoundRepo) Stale(now time.Time, age time.Duration) []int64 {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	var ids []int64
	for id, round := range r.rounds {
		if now.Sub(round.CreatedAt) > age {
			ids = append(ids, id)
		}
	}
	return ids
}

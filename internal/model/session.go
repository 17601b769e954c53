package model

import "time"

// Session Игровая сессия (одна партия)
type Session struct {
	ID               int64
	UserID           int64
	InitialCapital   int64
	CurrentCapital   int64
	RemainingChances int
	RemainingRerolls int
	IsFinished       bool
	FinalProfitRate  *float64 // nil пока сессия не завершена
	CreatedAt        time.Time
}

// ProfitRate Текущий процент изменения капитала относительно стартового
func (s *Session) ProfitRate() float64 {
	if s.InitialCapital == 0 {
		return 0
	}
	return float64(s.CurrentCapital-s.InitialCapital) / float64(s.InitialCapital) * 100
}

// IsOver Выполнено ли условие завершения сессии
func (s *Session) IsOver() bool {
	return s.RemainingChances <= 0 || s.CurrentCapital <= 0
}

// Finish Переводит сессию в завершенное состояние.
// Возвращает false, если сессия уже была завершена.
func (s *Session) Finish() bool {
	if s.IsFinished {
		return false
	}
	rate := s.ProfitRate()
	s.IsFinished = true
	s.FinalProfitRate = &rate
	return true
}

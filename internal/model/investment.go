package model

import "time"

// Investment Запись о разрешенном раунде. После создания не меняется
type Investment struct {
	ID                      int64
	SessionID               int64
	CharacterName           string
	IdeaTitle               string
	IdeaDescription         string
	InvestAmount            int64
	IsSuccess               bool
	ProfitRate              int // -100 при провале, ROI при успехе
	ResultSystemMsg         string
	ResultCharacterReaction string
	CreatedAt               time.Time
}

// InvestRequest Ставка игрока
type InvestRequest struct {
	Amount  int64
	RoundID string // Необязательный, защищает от повторной отправки
}

// InvestResult Итог инвестиции вместе с состоянием сессии после нее
type InvestResult struct {
	Investment Investment
	Session    Session
	Profit     int64 // Изменение капитала со знаком
}

// SessionView Сессия вместе с историей ее инвестиций
type SessionView struct {
	Session     Session
	Investments []Investment
}

// InvestmentView Экран результата
type InvestmentView struct {
	Investment   Investment
	Session      Session
	CharacterKey string
}

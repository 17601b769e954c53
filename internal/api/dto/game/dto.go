package game

import "time"

type SessionResponse struct {
	ID               int64     `json:"id"`
	InitialCapital   int64     `json:"initial_capital"`
	CurrentCapital   int64     `json:"current_capital"`
	RemainingChances int       `json:"remaining_chances"`
	RemainingRerolls int       `json:"remaining_rerolls"`
	IsFinished       bool      `json:"is_finished"`
	ProfitRate       float64   `json:"profit_rate"`       // Текущий процент
	FinalProfitRate  *float64  `json:"final_profit_rate"` // null пока партия идет
	CreatedAt        time.Time `json:"created_at"`
}

type SessionViewResponse struct {
	Session     SessionResponse      `json:"session"`
	Investments []InvestmentResponse `json:"investments"` // По порядку ставок
}

type CharacterResponse struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Concept string `json:"concept"`
}

type IdeaResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type TierResponse struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

type RoundResponse struct {
	RoundID        string            `json:"round_id"` // Передается обратно в invest
	Character      CharacterResponse `json:"character"`
	Idea           IdeaResponse      `json:"idea"`
	SuccessProb    float64           `json:"success_prob"`    // 0..1
	SuccessPercent int               `json:"success_percent"` // Для отображения
	Tier           TierResponse      `json:"tier"`
	Enchanted      bool              `json:"enchanted"`
	CanEnchant     bool              `json:"can_enchant"`
	Session        SessionResponse   `json:"session"`
}

type InvestRequest struct {
	Amount  int64  `json:"amount"`
	RoundID string `json:"round_id,omitempty"`
}

type InvestmentResponse struct {
	ID              int64     `json:"id"`
	SessionID       int64     `json:"session_id"`
	CharacterName   string    `json:"character_name"`
	IdeaTitle       string    `json:"idea_title"`
	IdeaDescription string    `json:"idea_description"`
	InvestAmount    int64     `json:"invest_amount"`
	IsSuccess       bool      `json:"is_success"`
	ProfitRate      int       `json:"profit_rate"` // ROI в процентах, -100 при провале
	SystemMsg       string    `json:"system_msg"`
	Reaction        string    `json:"reaction"`
	CreatedAt       time.Time `json:"created_at"`
}

type InvestResponse struct {
	Investment InvestmentResponse `json:"investment"`
	Profit     int64              `json:"profit"`
	Session    SessionResponse    `json:"session"`
}

type InvestmentViewResponse struct {
	Investment   InvestmentResponse `json:"investment"`
	CharacterKey string             `json:"character_key"` // Ключ картинки персонажа
	Session      SessionResponse    `json:"session"`
}

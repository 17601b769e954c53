package model

import (
	"time"

	"github.com/google/uuid"
)

// Round Текущий нерешенный раунд сессии. Хранится только в памяти
type Round struct {
	ID          uuid.UUID
	SessionID   int64
	Character   Character
	Idea        Idea
	SuccessProb float64
	Enchanted   bool
	CreatedAt   time.Time
}

// RoundView Раунд вместе с состоянием сессии, то что видит игрок
type RoundView struct {
	Round      Round
	Session    Session
	Tier       ProbabilityTier
	CanEnchant bool
}

// ProbabilityTier Текстовая ступень вероятности успеха
type ProbabilityTier struct {
	Label string
	Class string
}

// TierOf Переводит вероятность 0..1 в ступень
func TierOf(prob float64) ProbabilityTier {
	percent := prob * 100
	switch {
	case percent >= 100:
		return ProbabilityTier{Label: "certain", Class: "prob-perfect"}
	case percent >= 81:
		return ProbabilityTier{Label: "great", Class: "prob-great"}
	case percent >= 61:
		return ProbabilityTier{Label: "good", Class: "prob-good"}
	case percent >= 41:
		return ProbabilityTier{Label: "normal", Class: "prob-normal"}
	case percent >= 21:
		return ProbabilityTier{Label: "low", Class: "prob-low"}
	default:
		return ProbabilityTier{Label: "worst", Class: "prob-worst"}
	}
}

package model

import (
	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID             int64
	Nickname       string
	TotalGames     int
	BestProfitRate *float64 // nil пока нет ни одной завершенной игры
}

type UserClaims struct {
	jwt.RegisteredClaims
	Nickname string `json:"nickname"`
}

// Profile Страница игрока: статистика и последние партии
type Profile struct {
	User        User
	RecentGames []Session
}

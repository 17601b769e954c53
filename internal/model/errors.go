package model

import "errors"

var (
	ErrInvalidStake        = errors.New("invalid stake")
	ErrSessionFinished     = errors.New("session is finished")
	ErrSessionNotFound     = errors.New("session not found")
	ErrAlreadyEnchanted    = errors.New("round is already enchanted")
	ErrInsufficientCapital = errors.New("not enough capital")
	ErrNoRerollsLeft       = errors.New("no rerolls left")
	ErrNoPendingRound      = errors.New("no pending round")
	ErrRoundMismatch       = errors.New("round id does not match the pending round")
	ErrInvestmentNotFound  = errors.New("investment not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrConcurrentUpdate    = errors.New("session was modified concurrently")
	ErrActiveSessionExists = errors.New("active session already exists")
)

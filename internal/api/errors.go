package api

import (
	"errors"
	"log/slog"
	"net/http"
	"pitch_backend/internal/model"
	"pitch_backend/pkg/resp"
)

type apiError struct {
	status int
	code   string
}

var known = []struct {
	err error
	apiError
}{
	{model.ErrInvalidStake, apiError{http.StatusUnprocessableEntity, "invalid_stake"}},
	{model.ErrSessionFinished, apiError{http.StatusConflict, "session_finished"}},
	{model.ErrAlreadyEnchanted, apiError{http.StatusConflict, "already_enchanted"}},
	{model.ErrInsufficientCapital, apiError{http.StatusConflict, "insufficient_capital"}},
	{model.ErrNoRerollsLeft, apiError{http.StatusConflict, "no_rerolls_left"}},
	{model.ErrNoPendingRound, apiError{http.StatusConflict, "no_pending_round"}},
	{model.ErrRoundMismatch, apiError{http.StatusConflict, "round_mismatch"}},
	{model.ErrConcurrentUpdate, apiError{http.StatusConflict, "concurrent_update"}},
	{model.ErrSessionNotFound, apiError{http.StatusNotFound, "session_not_found"}},
	{model.ErrInvestmentNotFound, apiError{http.StatusNotFound, "investment_not_found"}},
	{model.ErrUserNotFound, apiError{http.StatusNotFound, "user_not_found"}},
}

// WriteError Переводит ошибку сервиса в HTTP ответ. Неизвестные ошибки
// логируются и отдаются как 500 без подробностей
func WriteError(w http.ResponseWriter, log *slog.Logger, err error) {
	for _, k := range known {
		if errors.Is(err, k.err) {
			resp.WriteError(w, k.status, k.code, k.err.Error())
			return
		}
	}
	log.Error("request failed", "err", err)
	resp.WriteError(w, http.StatusInternalServerError, "internal", "internal error")
}

func WriteBadRequest(w http.ResponseWriter, message string) {
	resp.WriteError(w, http.StatusBadRequest, "bad_request", message)
}

func WriteUnauthorized(w http.ResponseWriter) {
	resp.WriteError(w, http.StatusUnauthorized, "unauthorized", "access token is required")
}

package ranking

import (
	"errors"
	"log/slog"
	"net/http"
	"pitch_backend/internal/api"
	"pitch_backend/internal/converter"
	"pitch_backend/internal/middleware"
	"pitch_backend/internal/model"
	"pitch_backend/internal/service"
	"pitch_backend/pkg/resp"
	"strconv"
)

type HandlerDeps struct {
	Serv   service.RankingService
	Logger *slog.Logger
}

type Handler struct {
	serv service.RankingService
	log  *slog.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Handler{serv: deps.Serv, log: deps.Logger}
}

// Leaderboard Рейтинг за сегодня и зал славы.
// С параметром ?limit=N отдает только дневной рейтинг
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			api.WriteBadRequest(w, "invalid limit")
			return
		}
		rows, err := h.serv.Daily(r.Context(), limit)
		if err != nil {
			api.WriteError(w, h.log, err)
			return
		}
		resp.WriteJSONResponse(w, http.StatusOK, converter.ToRankingRows(rows))
		return
	}

	lb, err := h.serv.Leaderboard(r.Context())
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToLeaderboardResponse(*lb))
}

func (h *Handler) Top3(w http.ResponseWriter, r *http.Request) {
	rows, err := h.serv.Top3(r.Context())
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRankingRows(rows))
}

func (h *Handler) HallOfFame(w http.ResponseWriter, r *http.Request) {
	rows, err := h.serv.HallOfFame(r.Context())
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRankingRows(rows))
}

// Profile Страница игрока
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		api.WriteUnauthorized(w)
		return
	}

	p, err := h.serv.Profile(r.Context(), user.ID)
	if errors.Is(err, model.ErrUserNotFound) {
		// игрок еще ни разу не начинал партию
		p, err = &model.Profile{User: user}, nil
	}
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToProfileResponse(*p))
}

package game

import (
	"log/slog"
	"net/http"
	"pitch_backend/internal/api"
	dto "pitch_backend/internal/api/dto/game"
	"pitch_backend/internal/converter"
	"pitch_backend/internal/middleware"
	"pitch_backend/internal/service"
	"pitch_backend/pkg/req"
	"pitch_backend/pkg/resp"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv   service.GameService
	Logger *slog.Logger
}

type Handler struct {
	serv service.GameService
	log  *slog.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Handler{serv: deps.Serv, log: deps.Logger}
}

// Start Возвращает активную партию игрока или начинает новую
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		api.WriteUnauthorized(w)
		return
	}

	sess, err := h.serv.Start(r.Context(), user)
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionResponse(*sess))
}

// Session Состояние партии и история ее инвестиций
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := h.sessionParams(w, r)
	if !ok {
		return
	}

	view, err := h.serv.Session(r.Context(), userID, sessionID)
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionViewResponse(*view))
}

// Round Текущий раунд: персонаж, питч, вероятность
func (h *Handler) Round(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := h.sessionParams(w, r)
	if !ok {
		return
	}

	view, err := h.serv.CurrentRound(r.Context(), userID, sessionID)
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRoundResponse(*view))
}

func (h *Handler) Invest(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := h.sessionParams(w, r)
	if !ok {
		return
	}
	payload, err := req.Decode[dto.InvestRequest](r.Body)
	if err != nil {
		api.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.serv.Invest(r.Context(), userID, sessionID, converter.ToInvestRequest(payload))
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToInvestResponse(*result))
}

func (h *Handler) Enchant(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := h.sessionParams(w, r)
	if !ok {
		return
	}

	view, err := h.serv.Enchant(r.Context(), userID, sessionID)
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRoundResponse(*view))
}

// Reroll Пропуск раунда, следующий GET round покажет нового персонажа
func (h *Handler) Reroll(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := h.sessionParams(w, r)
	if !ok {
		return
	}

	sess, err := h.serv.Reroll(r.Context(), userID, sessionID)
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionResponse(*sess))
}

func (h *Handler) Investment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		api.WriteUnauthorized(w)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		api.WriteBadRequest(w, "invalid investment id")
		return
	}

	view, err := h.serv.Investment(r.Context(), user.ID, id)
	if err != nil {
		api.WriteError(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToInvestmentViewResponse(*view))
}

func (h *Handler) sessionParams(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		api.WriteUnauthorized(w)
		return 0, 0, false
	}
	sessionID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		api.WriteBadRequest(w, "invalid session id")
		return 0, 0, false
	}
	return user.ID, sessionID, true
}

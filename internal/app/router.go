package app

import (
	"context"
	"net/http"
	authMW "pitch_backend/internal/middleware"
	"pitch_backend/pkg/resp"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.RealIP)
		r.Use(middleware.Recoverer)
		r.Use(middleware.Timeout(60 * time.Second))

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			resp.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		// Ranking endpoints
		rankingHandler := sp.RankingHandler(ctx)
		r.Route("/ranking", func(rr chi.Router) {
			rr.Get("/", rankingHandler.Leaderboard)
			rr.Get("/top3", rankingHandler.Top3)
			rr.Get("/hall-of-fame", rankingHandler.HallOfFame)
		})

		// Endpoints for an authenticated player
		gameHandler := sp.GameHandler(ctx)
		r.Group(func(rr chi.Router) {
			rr.Use(authMW.Auth(sp.JWTCfg().AccessTokenSecretKey()))

			rr.Get("/me", rankingHandler.Profile)
			rr.Route("/game", func(g chi.Router) {
				g.Post("/start", gameHandler.Start)
				g.Get("/sessions/{id}", gameHandler.Session)
				g.Get("/sessions/{id}/round", gameHandler.Round)
				g.Post("/sessions/{id}/invest", gameHandler.Invest)
				g.Post("/sessions/{id}/enchant", gameHandler.Enchant)
				g.Post("/sessions/{id}/reroll", gameHandler.Reroll)
				g.Get("/investments/{id}", gameHandler.Investment)
			})
		})

		sp.router = r
	}

	return sp.router
}

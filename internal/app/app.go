package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"pitch_backend/internal/config"
	"pitch_backend/internal/db"
	"pitch_backend/internal/model"
	"pitch_backend/pkg/token"
	"time"

	"golang.org/x/sync/errgroup"
)

type App struct {
	ServiceProvider *ServiceProvider
	logger          *slog.Logger
}

// NewApp Загружает .env, если он есть, и готовит провайдер зависимостей
func NewApp(logger *slog.Logger) *App {
	if err := config.Load(".env"); err != nil {
		logger.Debug("no .env file loaded", "err", err)
	}
	return &App{
		ServiceProvider: newServiceProvider(logger),
		logger:          logger,
	}
}

// Run HTTP сервер и очистка раундов завершенных сессий до отмены ctx
func (s *App) Run(ctx context.Context) error {
	defer s.ServiceProvider.Close()

	addr := s.ServiceProvider.HTTPCfg().Address()
	server := &http.Server{
		Addr:              addr,
		Handler:           s.ServiceProvider.Router(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("pitch api listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		runRoundJanitor(
			gctx,
			s.ServiceProvider.RoundRepo(),
			s.ServiceProvider.SessionRepo(ctx),
			s.ServiceProvider.GameCfg().RoundTTL(),
			s.logger,
		)
		return nil
	})

	return g.Wait()
}

// Migrate Применяет схему базы данных
func (s *App) Migrate(ctx context.Context) ([]string, error) {
	defer s.ServiceProvider.Close()
	return db.Migrate(ctx, s.ServiceProvider.DBClient(ctx))
}

// IssueToken Токен доступа для игрока. Нужен для локальной разработки
func (s *App) IssueToken(user model.User) (string, error) {
	cfg := s.ServiceProvider.JWTCfg()
	return token.GenerateAccessToken(user, cfg.AccessTokenSecretKey(), cfg.AccessTokenDuration())
}

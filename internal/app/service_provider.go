package app

import (
	"context"
	"log/slog"
	gameAPI "pitch_backend/internal/api/game"
	rankingAPI "pitch_backend/internal/api/ranking"
	"pitch_backend/internal/catalog"
	"pitch_backend/internal/client/gemini"
	"pitch_backend/internal/config"
	"pitch_backend/internal/config/env"
	"pitch_backend/internal/db"
	"pitch_backend/internal/generator"
	"pitch_backend/internal/repository"
	"pitch_backend/internal/repository/investment_repo"
	"pitch_backend/internal/repository/ranking_repo"
	"pitch_backend/internal/repository/round_repo"
	"pitch_backend/internal/repository/session_repo"
	"pitch_backend/internal/repository/user_repo"
	"pitch_backend/internal/service"
	"pitch_backend/internal/service/game"
	"pitch_backend/internal/service/ranking"
	"pitch_backend/pkg/rng"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceProvider struct {
	logger *slog.Logger

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Catalog and generator
	catalogCfg   config.CatalogConfig
	catalog      *catalog.Catalog
	generatorCfg config.GeneratorConfig
	geminiClient *gemini.Client
	generator    service.IdeaGenerator

	// Repositories
	userRepo       repository.UserRepository
	sessionRepo    repository.SessionRepository
	investmentRepo repository.InvestmentRepository
	rankingRepo    repository.RankingRepository
	roundRepo      *round_repo.RoundRepo

	// Game bits
	gameCfg  config.GameConfig
	gameServ service.GameService
	gameHand *gameAPI.Handler

	// Ranking bits
	rankingCfg  config.RankingConfig
	rankingServ service.RankingService
	rankingHand *rankingAPI.Handler

	// Router and HTTP config
	jwtCfg  config.JWTConfig
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider(logger *slog.Logger) *ServiceProvider {
	return &ServiceProvider{logger: logger}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := db.Connect(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to connect to db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}
	return sp.txManager
}

func (sp *ServiceProvider) CatalogCfg() config.CatalogConfig {
	if sp.catalogCfg == nil {
		cfg, err := env.NewCatalogConfigFromYAML(env.CatalogPath())
		if err != nil {
			panic("failed to get catalog config: " + err.Error())
		}
		sp.catalogCfg = cfg
	}
	return sp.catalogCfg
}

func (sp *ServiceProvider) Catalog() *catalog.Catalog {
	if sp.catalog == nil {
		c, err := catalog.New(sp.CatalogCfg().Characters())
		if err != nil {
			panic("invalid character catalog: " + err.Error())
		}
		sp.catalog = c
	}
	return sp.catalog
}

func (sp *ServiceProvider) GeneratorCfg() config.GeneratorConfig {
	if sp.generatorCfg == nil {
		cfg, err := env.NewGeneratorConfig()
		if err != nil {
			panic("failed to get generator config: " + err.Error())
		}
		sp.generatorCfg = cfg
	}
	return sp.generatorCfg
}

// Generator Без ключа API все тексты берутся из заглушек
func (sp *ServiceProvider) Generator(ctx context.Context) service.IdeaGenerator {
	if sp.generator == nil {
		cfg := sp.GeneratorCfg()
		var (
			text generator.TextGenerator = generator.Offline{}
			opts []generator.Option
		)
		if cfg.APIKey() != "" {
			c, err := gemini.NewClient(ctx, cfg.APIKey(), gemini.Options{
				Model:           cfg.Model(),
				Temperature:     0.8,
				MaxOutputTokens: 300,
			})
			if err != nil {
				panic("failed to create gemini client: " + err.Error())
			}
			sp.geminiClient = c
			text = c
			// реакции без ограничения длины ответа
			opts = append(opts, generator.WithResultText(c.WithOptions(gemini.Options{
				Model:       cfg.Model(),
				Temperature: 0.8,
			})))
		} else {
			sp.logger.Warn("GEMINI_API_KEY is not set, using fallback texts")
		}
		sp.generator = generator.New(text, cfg.Timeout(), sp.logger, opts...)
	}
	return sp.generator
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) SessionRepo(ctx context.Context) repository.SessionRepository {
	if sp.sessionRepo == nil {
		sp.sessionRepo = session_repo.NewSessionRepository(sp.DBClient(ctx))
	}
	return sp.sessionRepo
}

func (sp *ServiceProvider) InvestmentRepo(ctx context.Context) repository.InvestmentRepository {
	if sp.investmentRepo == nil {
		sp.investmentRepo = investment_repo.NewInvestmentRepository(sp.DBClient(ctx))
	}
	return sp.investmentRepo
}

func (sp *ServiceProvider) RankingRepo(ctx context.Context) repository.RankingRepository {
	if sp.rankingRepo == nil {
		sp.rankingRepo = ranking_repo.NewRankingRepository(sp.DBClient(ctx))
	}
	return sp.rankingRepo
}

func (sp *ServiceProvider) RoundRepo() *round_repo.RoundRepo {
	if sp.roundRepo == nil {
		sp.roundRepo = round_repo.NewRoundRepository()
	}
	return sp.roundRepo
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfig()
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) RankingCfg() config.RankingConfig {
	if sp.rankingCfg == nil {
		cfg, err := env.NewRankingConfig()
		if err != nil {
			panic("failed to get ranking config: " + err.Error())
		}
		sp.rankingCfg = cfg
	}
	return sp.rankingCfg
}

func (sp *ServiceProvider) RankingService(ctx context.Context) service.RankingService {
	if sp.rankingServ == nil {
		sp.rankingServ = ranking.NewRankingService(
			sp.RankingRepo(ctx),
			sp.SessionRepo(ctx),
			sp.UserRepo(ctx),
			sp.RankingCfg().Location(),
			sp.logger,
		)
	}
	return sp.rankingServ
}

func (sp *ServiceProvider) GameService(ctx context.Context) service.GameService {
	if sp.gameServ == nil {
		sp.gameServ = game.NewGameService(game.Deps{
			Rules:          game.RulesFromConfig(sp.GameCfg()),
			Catalog:        sp.Catalog(),
			Generator:      sp.Generator(ctx),
			Stats:          sp.RankingService(ctx),
			SessionRepo:    sp.SessionRepo(ctx),
			InvestmentRepo: sp.InvestmentRepo(ctx),
			UserRepo:       sp.UserRepo(ctx),
			RoundRepo:      sp.RoundRepo(),
			TxManager:      sp.TXManager(ctx),
			Rand:           rng.NewTimeSeeded(),
			Logger:         sp.logger,
		})
	}
	return sp.gameServ
}

func (sp *ServiceProvider) GameHandler(ctx context.Context) *gameAPI.Handler {
	if sp.gameHand == nil {
		sp.gameHand = gameAPI.NewHandler(gameAPI.HandlerDeps{
			Serv:   sp.GameService(ctx),
			Logger: sp.logger,
		})
	}
	return sp.gameHand
}

func (sp *ServiceProvider) RankingHandler(ctx context.Context) *rankingAPI.Handler {
	if sp.rankingHand == nil {
		sp.rankingHand = rankingAPI.NewHandler(rankingAPI.HandlerDeps{
			Serv:   sp.RankingService(ctx),
			Logger: sp.logger,
		})
	}
	return sp.rankingHand
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

// Close Освобождает внешние ресурсы
func (sp *ServiceProvider) Close() {
	if sp.geminiClient != nil {
		if err := sp.geminiClient.Close(); err != nil {
			sp.logger.Warn("close gemini client", "err", err)
		}
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
}

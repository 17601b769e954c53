package game

import (
	"log/slog"
	"pitch_backend/internal/catalog"
	"pitch_backend/internal/config"
	"pitch_backend/internal/repository"
	"pitch_backend/internal/service"
	"pitch_backend/pkg/rng"
	"time"
)

// Rules Числовые правила партии
type Rules struct {
	StartCapital    int64
	StartChances    int
	StartRerolls    int
	MinStake        int64
	EnchantCost     int64
	EnchantBoostMin int // процентные пункты
	EnchantBoostMax int
}

// RulesFromConfig Правила из конфига окружения
func RulesFromConfig(cfg config.GameConfig) Rules {
	return Rules{
		StartCapital:    cfg.StartCapital(),
		StartChances:    cfg.StartChances(),
		StartRerolls:    cfg.StartRerolls(),
		MinStake:        cfg.MinStake(),
		EnchantCost:     cfg.EnchantCost(),
		EnchantBoostMin: cfg.EnchantBoostMin(),
		EnchantBoostMax: cfg.EnchantBoostMax(),
	}
}

type Deps struct {
	Rules          Rules
	Catalog        *catalog.Catalog
	Generator      service.IdeaGenerator
	Stats          service.StatsRecorder
	SessionRepo    repository.SessionRepository
	InvestmentRepo repository.InvestmentRepository
	UserRepo       repository.UserRepository
	RoundRepo      repository.RoundRepository
	TxManager      repository.TxManager
	Rand           rng.Source
	Logger         *slog.Logger
	Now            func() time.Time
}

type serv struct {
	rules          Rules
	catalog        *catalog.Catalog
	generator      service.IdeaGenerator
	stats          service.StatsRecorder
	sessionRepo    repository.SessionRepository
	investmentRepo repository.InvestmentRepository
	userRepo       repository.UserRepository
	roundRepo      repository.RoundRepository
	txManager      repository.TxManager
	rand           rng.Source
	log            *slog.Logger
	now            func() time.Time

	// Действия по одной сессии выполняются строго по очереди
	sessionLocks *keyedMutex
	userLocks    *keyedMutex
}

// NewGameService Движок партии: раунды, ставки, усиление, пропуск
func NewGameService(deps Deps) service.GameService {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Rand == nil {
		deps.Rand = rng.NewTimeSeeded()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &serv{
		rules:          deps.Rules,
		catalog:        deps.Catalog,
		generator:      deps.Generator,
		stats:          deps.Stats,
		sessionRepo:    deps.SessionRepo,
		investmentRepo: deps.InvestmentRepo,
		userRepo:       deps.UserRepo,
		roundRepo:      deps.RoundRepo,
		txManager:      deps.TxManager,
		rand:           deps.Rand,
		log:            deps.Logger,
		now:            deps.Now,
		sessionLocks:   newKeyedMutex(),
		userLocks:      newKeyedMutex(),
	}
}

package game

import (
	"context"
	"io"
	"log/slog"
	"pitch_backend/internal/catalog"
	"pitch_backend/internal/model"
	"pitch_backend/internal/repository/round_repo"
	"sort"
	"sync"
	"testing"
	"time"
)

// store Общая память фейковых репозиториев. Транзакция откатывает ее целиком
type store struct {
	mtx         sync.Mutex
	sessions    map[int64]model.Session
	investments map[int64]model.Investment
	users       map[int64]model.User
	nextID      int64
	finishes    []float64
	failUpdate  error
}

func newStore() *store {
	return &store{
		sessions:    make(map[int64]model.Session),
		investments: make(map[int64]model.Investment),
		users:       make(map[int64]model.User),
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *store) session(id int64) model.Session {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.sessions[id]
}

func (s *store) putSession(sess model.Session) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.sessions[sess.ID] = sess
}

func (s *store) investmentCount() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return len(s.investments)
}

type fakeTx struct {
	st  *store
	mtx sync.Mutex
}

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	f.st.mtx.Lock()
	sessions := make(map[int64]model.Session, len(f.st.sessions))
	for k, v := range f.st.sessions {
		sessions[k] = v
	}
	investments := make(map[int64]model.Investment, len(f.st.investments))
	for k, v := range f.st.investments {
		investments[k] = v
	}
	users := make(map[int64]model.User, len(f.st.users))
	for k, v := range f.st.users {
		users[k] = v
	}
	finishes := append([]float64(nil), f.st.finishes...)
	f.st.mtx.Unlock()

	if err := fn(ctx); err != nil {
		f.st.mtx.Lock()
		f.st.sessions, f.st.investments, f.st.users, f.st.finishes = sessions, investments, users, finishes
		f.st.mtx.Unlock()
		return err
	}
	return nil
}

type fakeSessions struct{ st *store }

func (f *fakeSessions) Create(_ context.Context, sess *model.Session) error {
	f.st.mtx.Lock()
	defer f.st.mtx.Unlock()
	for _, s := range f.st.sessions {
		if s.UserID == sess.UserID && !s.IsFinished {
			return model.ErrActiveSessionExists
		}
	}
	sess.ID = f.st.id()
	sess.CreatedAt = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	f.st.sessions[sess.ID] = *sess
	return nil
}

func (f *fakeSessions) Get(_ context.Context, id int64) (*model.Session, error) {
	f.st.mtx.Lock()
	defer f.st.mtx.Unlock()
	s, ok := f.st.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return &s, nil
}

func (f *fakeSessions) GetForUpdate(ctx context.Context, id int64) (*model.Session, error) {
	return f.Get(ctx, id)
}

func (f *fakeSessions) GetActiveByUser(_ context.Context, userID int64) (*model.Session, error) {
	f.st.mtx.Lock()
	defer f.st.mtx.Unlock()
	for _, s := range f.st.sessions {
		if s.UserID == userID && !s.IsFinished {
			return &s, nil
		}
	}
	return nil, model.ErrSessionNotFound
}

func (f *fakeSessions) Update(_ context.Context, sess *model.Session) error {
	f.st.mtx.Lock()
	defer f.st.mtx.Unlock()
	if f.st.failUpdate != nil {
		return f.st.failUpdate
	}
	f.st.sessions[sess.ID] = *sess
	return nil
}

func (f *fakeSessions) ListFinishedByUser(_ context.Context, userID int64, limit int) ([]model.Session, error) {
	f.st.mtx.Lock()
	defer f.st.mtx.Unlock()
	var out []model.Session
	for _, s := range f.st.sessions {
		if s.UserID == userID && s.IsFinished {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeInvestments struct{ st *store }

func (f *fakeInvestments) Create(_ context.Context, inv *model.Investment) error {
	f.st.mtx.Lock()
	defer f.st.mtx.Unlock()
	inv.ID = f.st.id()
	f.st.investments[inv.ID] = *inv
	return nil
}

func (f *fakeInvestments) Get(_ context.Context, id int64) (*model.Investment, error) {
	f.st.mtx.Lock()
	defer f.st.mtx.Unlock()
	inv, ok := f.st.investments[id]
	if !ok {
		return nil, model.ErrInvestmentNotFound
	}
	return &inv, nil
}

func (f *fakeInvestments) ListBySession(_ context.Context, sessionID int64) ([]model.Investment, error) {
	f.st.mtx.Lock()
	defer f.st.mtx.Unlock()
	var out []model.Investment
	for _, inv := range f.st.investments {
		if inv.SessionID == sessionID {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeUsers struct{ st *store }

func (f *fakeUsers) Ensure(_ context.Context, id int64, nickname string) error {
	f.st.mtx.Lock()
	defer f.st.mtx.Unlock()
	u := f.st.users[id]
	u.ID = id
	u.Nickname = nickname
	f.st.users[id] = u
	return nil
}

func (f *fakeUsers) Get(_ context.Context, id int64) (*model.User, error) {
	f.st.mtx.Lock()
	defer f.st.mtx.Unlock()
	u, ok := f.st.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUsers) RecordFinish(_ context.Context, id int64, rate float64) error {
	f.st.mtx.Lock()
	defer f.st.mtx.Unlock()
	u := f.st.users[id]
	u.TotalGames++
	if u.BestProfitRate == nil || rate > *u.BestProfitRate {
		r := rate
		u.BestProfitRate = &r
	}
	f.st.users[id] = u
	f.st.finishes = append(f.st.finishes, rate)
	return nil
}

// scripted Детерминированный источник случайности
type scripted struct {
	mtx    sync.Mutex
	floats []float64
	ints   []int
}

func (s *scripted) Float64() float64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if len(s.floats) == 0 {
		return 0.5
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scripted) Intn(n int) int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

type stubGenerator struct {
	mtx   sync.Mutex
	ideas int
}

func (g *stubGenerator) GenerateIdea(_ context.Context, ch model.Character) model.Idea {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	g.ideas++
	return model.Idea{Title: ch.Name + " idea", Description: "pitch"}
}

func (g *stubGenerator) GenerateResult(_ context.Context, ch model.Character, _ string, success bool) model.Narrative {
	if success {
		return model.Narrative{SystemMsg: "win", Reaction: ch.Name + " cheers"}
	}
	return model.Narrative{SystemMsg: "loss", Reaction: ch.Name + " cries"}
}

type env struct {
	svc    *serv
	st     *store
	rounds *round_repo.RoundRepo
	rand   *scripted
	gen    *stubGenerator
}

var testChars = []model.Character{
	{Key: "sure", Name: "Sure Thing", SpawnWeight: 1, SuccessRate: 1.0, MinROI: 100, MaxROI: 100},
	{Key: "dud", Name: "Dud", SpawnWeight: 1, SuccessRate: 0.0, MinROI: 50, MaxROI: 80},
	{Key: "coin", Name: "Coin Flip", SpawnWeight: 1, SuccessRate: 0.5, MinROI: 10, MaxROI: 30},
}

const (
	charSure = 0
	charDud  = 1
	charCoin = 2
)

func newEnv(t *testing.T) *env {
	t.Helper()
	cat, err := catalog.New(testChars)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	st := newStore()
	rounds := round_repo.NewRoundRepository()
	src := &scripted{}
	gen := &stubGenerator{}
	users := &fakeUsers{st: st}

	svc := NewGameService(Deps{
		Rules: Rules{
			StartCapital:    10000,
			StartChances:    5,
			StartRerolls:    5,
			MinStake:        2000,
			EnchantCost:     2000,
			EnchantBoostMin: 10,
			EnchantBoostMax: 50,
		},
		Catalog:        cat,
		Generator:      gen,
		Stats:          users,
		SessionRepo:    &fakeSessions{st: st},
		InvestmentRepo: &fakeInvestments{st: st},
		UserRepo:       users,
		RoundRepo:      rounds,
		TxManager:      &fakeTx{st: st},
		Rand:           src,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:            func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) },
	}).(*serv)

	return &env{svc: svc, st: st, rounds: rounds, rand: src, gen: gen}
}

// start Новая сессия игрока 1 с заданными капиталом и шансами
func (e *env) start(t *testing.T, capital int64, chances int) *model.Session {
	t.Helper()
	sess, err := e.svc.Start(context.Background(), model.User{ID: 1, Nickname: "alice"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	sess.CurrentCapital = capital
	sess.RemainingChances = chances
	e.st.putSession(*sess)
	return sess
}

// round Создает раунд с выбранным персонажем
func (e *env) round(t *testing.T, sessionID int64, char int) *model.RoundView {
	t.Helper()
	e.rand.ints = append(e.rand.ints, char)
	view, err := e.svc.CurrentRound(context.Background(), 1, sessionID)
	if err != nil {
		t.Fatalf("current round: %v", err)
	}
	if view.Round.Character.Key != testChars[char].Key {
		t.Fatalf("round character = %s, want %s", view.Round.Character.Key, testChars[char].Key)
	}
	return view
}

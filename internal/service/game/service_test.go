package game

import (
	"context"
	"errors"
	"pitch_backend/internal/model"
	"sync"
	"testing"
)

func TestStartReturnsActiveSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := model.User{ID: 1, Nickname: "alice"}

	first, err := e.svc.Start(ctx, user)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if first.CurrentCapital != 10000 || first.InitialCapital != 10000 {
		t.Fatalf("capital = %d/%d, want 10000", first.CurrentCapital, first.InitialCapital)
	}
	if first.RemainingChances != 5 || first.RemainingRerolls != 5 || first.IsFinished {
		t.Fatalf("unexpected new session: %+v", first)
	}

	second, err := e.svc.Start(ctx, user)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second start created session %d, want %d", second.ID, first.ID)
	}
	if u := e.st.users[1]; u.Nickname != "alice" {
		t.Fatalf("user not ensured: %+v", u)
	}
}

func TestStartTruncatesNickname(t *testing.T) {
	e := newEnv(t)
	if _, err := e.svc.Start(context.Background(), model.User{ID: 1, Nickname: "abcdefghijklmnopqrstuvwxyz"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := e.st.users[1].Nickname; got != "abcdefghijklmnopqrst" {
		t.Fatalf("nickname = %q", got)
	}
}

func TestCurrentRoundIsStable(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	first := e.round(t, sess.ID, charCoin)

	again, err := e.svc.CurrentRound(context.Background(), 1, sess.ID)
	if err != nil {
		t.Fatalf("current round: %v", err)
	}
	if again.Round.ID != first.Round.ID {
		t.Fatalf("round changed between reads")
	}
	if e.gen.ideas != 1 {
		t.Fatalf("generator called %d times, want 1", e.gen.ideas)
	}
	if first.Round.SuccessProb != 0.5 || first.Round.Enchanted {
		t.Fatalf("fresh round: %+v", first.Round)
	}
	if !first.CanEnchant || first.Tier.Class != "prob-normal" {
		t.Fatalf("view: can_enchant=%v tier=%s", first.CanEnchant, first.Tier.Class)
	}
}

func TestSessionOwnership(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	ctx := context.Background()

	if _, err := e.svc.Session(ctx, 2, sess.ID); !errors.Is(err, model.ErrSessionNotFound) {
		t.Fatalf("foreign session: got %v", err)
	}
	if _, err := e.svc.CurrentRound(ctx, 2, sess.ID); !errors.Is(err, model.ErrSessionNotFound) {
		t.Fatalf("foreign round: got %v", err)
	}
	if _, err := e.svc.Session(ctx, 1, 999); !errors.Is(err, model.ErrSessionNotFound) {
		t.Fatalf("missing session: got %v", err)
	}
}

func TestSessionReturnsHistoryInOrder(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	ctx := context.Background()

	empty, err := e.svc.Session(ctx, 1, sess.ID)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if len(empty.Investments) != 0 {
		t.Fatalf("fresh session has %d investments", len(empty.Investments))
	}

	for _, amount := range []int64{1000, 2000} {
		e.round(t, sess.ID, charSure)
		if _, err := e.svc.Invest(ctx, 1, sess.ID, model.InvestRequest{Amount: amount}); err != nil {
			t.Fatalf("invest %d: %v", amount, err)
		}
	}

	view, err := e.svc.Session(ctx, 1, sess.ID)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if view.Session.CurrentCapital != 13000 || view.Session.RemainingChances != 3 {
		t.Fatalf("session: capital=%d chances=%d", view.Session.CurrentCapital, view.Session.RemainingChances)
	}
	if len(view.Investments) != 2 {
		t.Fatalf("history has %d investments, want 2", len(view.Investments))
	}
	if view.Investments[0].InvestAmount != 1000 || view.Investments[1].InvestAmount != 2000 {
		t.Fatalf("history out of order: %+v", view.Investments)
	}
}

func TestInvestSuccess(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	view := e.round(t, sess.ID, charSure)

	res, err := e.svc.Invest(context.Background(), 1, sess.ID, model.InvestRequest{Amount: 3000, RoundID: view.Round.ID.String()})
	if err != nil {
		t.Fatalf("invest: %v", err)
	}
	if res.Session.CurrentCapital != 13000 || res.Session.RemainingChances != 4 {
		t.Fatalf("session after invest: capital=%d chances=%d", res.Session.CurrentCapital, res.Session.RemainingChances)
	}
	if res.Profit != 3000 || !res.Investment.IsSuccess || res.Investment.ProfitRate != 100 {
		t.Fatalf("investment: %+v profit=%d", res.Investment, res.Profit)
	}
	if res.Investment.CharacterName != "Sure Thing" || res.Investment.ResultSystemMsg != "win" {
		t.Fatalf("investment texts: %+v", res.Investment)
	}
	if _, ok := e.rounds.Get(sess.ID); ok {
		t.Fatalf("round not cleared after invest")
	}
	if got := e.st.session(sess.ID); got.CurrentCapital != 13000 {
		t.Fatalf("persisted capital = %d", got.CurrentCapital)
	}
	if e.st.investmentCount() != 1 {
		t.Fatalf("investments = %d, want 1", e.st.investmentCount())
	}
}

func TestInvestFailureLosesStake(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	e.round(t, sess.ID, charDud)

	res, err := e.svc.Invest(context.Background(), 1, sess.ID, model.InvestRequest{Amount: 2500})
	if err != nil {
		t.Fatalf("invest: %v", err)
	}
	if res.Investment.IsSuccess || res.Investment.ProfitRate != -100 || res.Profit != -2500 {
		t.Fatalf("investment: %+v profit=%d", res.Investment, res.Profit)
	}
	if res.Session.CurrentCapital != 7500 || res.Session.RemainingChances != 4 {
		t.Fatalf("session: %+v", res.Session)
	}
}

func TestInvestProfitFloors(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	e.round(t, sess.ID, charCoin)
	// успех, ROI = 10 + 7 = 17
	e.rand.floats = []float64{0.1}
	e.rand.ints = []int{7}

	res, err := e.svc.Invest(context.Background(), 1, sess.ID, model.InvestRequest{Amount: 2999})
	if err != nil {
		t.Fatalf("invest: %v", err)
	}
	// 2999 * 17 / 100 = 509.83
	if res.Investment.ProfitRate != 17 || res.Profit != 509 {
		t.Fatalf("roi=%d profit=%d", res.Investment.ProfitRate, res.Profit)
	}
	if res.Session.CurrentCapital != 10509 {
		t.Fatalf("capital = %d", res.Session.CurrentCapital)
	}
}

func TestInvestAllInFailureFinishesSession(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 1000, 1)
	e.round(t, sess.ID, charDud)

	res, err := e.svc.Invest(context.Background(), 1, sess.ID, model.InvestRequest{Amount: 1000})
	if err != nil {
		t.Fatalf("all-in below min stake must be accepted: %v", err)
	}
	s := res.Session
	if s.CurrentCapital != 0 || !s.IsFinished || s.RemainingChances != 0 {
		t.Fatalf("session: %+v", s)
	}
	if s.FinalProfitRate == nil || *s.FinalProfitRate != -100 {
		t.Fatalf("final rate = %v", s.FinalProfitRate)
	}
	if len(e.st.finishes) != 1 || e.st.finishes[0] != -100 {
		t.Fatalf("stats finishes = %v", e.st.finishes)
	}
	if u := e.st.users[1]; u.TotalGames != 1 || *u.BestProfitRate != -100 {
		t.Fatalf("user stats: %+v", u)
	}
}

func TestInvestLastChanceFinishes(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 1)
	e.round(t, sess.ID, charSure)

	res, err := e.svc.Invest(context.Background(), 1, sess.ID, model.InvestRequest{Amount: 2000})
	if err != nil {
		t.Fatalf("invest: %v", err)
	}
	if !res.Session.IsFinished || *res.Session.FinalProfitRate != 20 {
		t.Fatalf("session: %+v", res.Session)
	}

	// после завершения никаких действий
	ctx := context.Background()
	if _, err := e.svc.CurrentRound(ctx, 1, sess.ID); !errors.Is(err, model.ErrSessionFinished) {
		t.Fatalf("round on finished: %v", err)
	}
	if _, err := e.svc.Invest(ctx, 1, sess.ID, model.InvestRequest{Amount: 2000}); !errors.Is(err, model.ErrSessionFinished) {
		t.Fatalf("invest on finished: %v", err)
	}
	if _, err := e.svc.Enchant(ctx, 1, sess.ID); !errors.Is(err, model.ErrSessionFinished) {
		t.Fatalf("enchant on finished: %v", err)
	}
	if _, err := e.svc.Reroll(ctx, 1, sess.ID); !errors.Is(err, model.ErrSessionFinished) {
		t.Fatalf("reroll on finished: %v", err)
	}
	if len(e.st.finishes) != 1 {
		t.Fatalf("stats recorded %d times", len(e.st.finishes))
	}
}

func TestInvestStakeValidation(t *testing.T) {
	tests := []struct {
		name    string
		capital int64
		amount  int64
		wantErr bool
	}{
		{name: "zero", capital: 10000, amount: 0, wantErr: true},
		{name: "negative", capital: 10000, amount: -100, wantErr: true},
		{name: "below minimum", capital: 10000, amount: 1999, wantErr: true},
		{name: "above capital", capital: 10000, amount: 10001, wantErr: true},
		{name: "minimum", capital: 10000, amount: 2000},
		{name: "all in", capital: 10000, amount: 10000},
		{name: "all in below minimum", capital: 1500, amount: 1500},
		{name: "partial below minimum with low capital", capital: 1500, amount: 1000, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t)
			sess := e.start(t, tc.capital, 5)
			e.round(t, sess.ID, charSure)

			_, err := e.svc.Invest(context.Background(), 1, sess.ID, model.InvestRequest{Amount: tc.amount})
			if tc.wantErr {
				if !errors.Is(err, model.ErrInvalidStake) {
					t.Fatalf("got %v, want ErrInvalidStake", err)
				}
				if got := e.st.session(sess.ID); got.CurrentCapital != tc.capital || got.RemainingChances != 5 {
					t.Fatalf("state changed on rejected stake: %+v", got)
				}
				if _, ok := e.rounds.Get(sess.ID); !ok {
					t.Fatalf("round dropped on rejected stake")
				}
				return
			}
			if err != nil {
				t.Fatalf("invest: %v", err)
			}
		})
	}
}

func TestInvestWithoutRound(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	_, err := e.svc.Invest(context.Background(), 1, sess.ID, model.InvestRequest{Amount: 2000})
	if !errors.Is(err, model.ErrNoPendingRound) {
		t.Fatalf("got %v, want ErrNoPendingRound", err)
	}
}

func TestInvestStaleRoundID(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	old := e.round(t, sess.ID, charSure)
	if _, err := e.svc.Reroll(context.Background(), 1, sess.ID); err != nil {
		t.Fatalf("reroll: %v", err)
	}
	e.round(t, sess.ID, charSure)

	_, err := e.svc.Invest(context.Background(), 1, sess.ID, model.InvestRequest{Amount: 2000, RoundID: old.Round.ID.String()})
	if !errors.Is(err, model.ErrRoundMismatch) {
		t.Fatalf("got %v, want ErrRoundMismatch", err)
	}
}

func TestInvestRollsBackOnStorageError(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	e.round(t, sess.ID, charSure)
	e.st.failUpdate = errors.New("db down")

	if _, err := e.svc.Invest(context.Background(), 1, sess.ID, model.InvestRequest{Amount: 2000}); err == nil {
		t.Fatalf("expected error")
	}
	if e.st.investmentCount() != 0 {
		t.Fatalf("investment kept after rollback")
	}
	if _, ok := e.rounds.Get(sess.ID); !ok {
		t.Fatalf("round must survive a failed invest")
	}
}

func TestInvestConcurrentSubmitsResolveOnce(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	e.round(t, sess.ID, charSure)

	var (
		wg       sync.WaitGroup
		mtx      sync.Mutex
		ok       int
		rejected int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.svc.Invest(context.Background(), 1, sess.ID, model.InvestRequest{Amount: 2000})
			mtx.Lock()
			defer mtx.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, model.ErrNoPendingRound):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || rejected != 7 {
		t.Fatalf("ok=%d rejected=%d", ok, rejected)
	}
	if got := e.st.session(sess.ID); got.RemainingChances != 4 || got.CurrentCapital != 12000 {
		t.Fatalf("session: %+v", got)
	}
	if e.svc.sessionLocks.size() != 0 {
		t.Fatalf("session locks leaked")
	}
}

func TestConcurrentUpdateDetected(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	e.round(t, sess.ID, charSure)

	snapshot := e.st.session(sess.ID)
	// другой экземпляр успел изменить строку
	changed := snapshot
	changed.RemainingRerolls--
	e.st.putSession(changed)

	if _, err := e.svc.lockSession(context.Background(), &snapshot); !errors.Is(err, model.ErrConcurrentUpdate) {
		t.Fatalf("got %v, want ErrConcurrentUpdate", err)
	}

	// свежее чтение видит новое состояние, ставка проходит
	if _, err := e.svc.Invest(context.Background(), 1, sess.ID, model.InvestRequest{Amount: 2000}); err != nil {
		t.Fatalf("invest on fresh read must pass: %v", err)
	}
}

func TestZombieSessionIsFinalized(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 0, 3)

	_, err := e.svc.CurrentRound(context.Background(), 1, sess.ID)
	if !errors.Is(err, model.ErrSessionFinished) {
		t.Fatalf("got %v, want ErrSessionFinished", err)
	}
	got := e.st.session(sess.ID)
	if !got.IsFinished || got.FinalProfitRate == nil || *got.FinalProfitRate != -100 {
		t.Fatalf("session not finalized: %+v", got)
	}
	if len(e.st.finishes) != 1 {
		t.Fatalf("stats recorded %d times", len(e.st.finishes))
	}

	// повторная проверка ничего не меняет
	if _, err := e.svc.CurrentRound(context.Background(), 1, sess.ID); !errors.Is(err, model.ErrSessionFinished) {
		t.Fatalf("got %v", err)
	}
	if len(e.st.finishes) != 1 {
		t.Fatalf("stats recorded twice")
	}
}

func TestEnchant(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	e.round(t, sess.ID, charCoin)
	// boost = 10 + 20 = 30
	e.rand.ints = []int{20}

	view, err := e.svc.Enchant(context.Background(), 1, sess.ID)
	if err != nil {
		t.Fatalf("enchant: %v", err)
	}
	if view.Round.SuccessProb != 0.8 || !view.Round.Enchanted || view.CanEnchant {
		t.Fatalf("round after enchant: %+v can=%v", view.Round, view.CanEnchant)
	}
	if view.Session.CurrentCapital != 8000 {
		t.Fatalf("capital = %d, want 8000", view.Session.CurrentCapital)
	}
	if view.Tier.Class != "prob-good" {
		t.Fatalf("tier = %s", view.Tier.Class)
	}

	stored, _ := e.rounds.Get(sess.ID)
	if stored.SuccessProb != 0.8 || !stored.Enchanted {
		t.Fatalf("stored round: %+v", stored)
	}

	if _, err := e.svc.Enchant(context.Background(), 1, sess.ID); !errors.Is(err, model.ErrAlreadyEnchanted) {
		t.Fatalf("second enchant: %v", err)
	}
	if got := e.st.session(sess.ID); got.CurrentCapital != 8000 {
		t.Fatalf("second enchant charged: %d", got.CurrentCapital)
	}
}

func TestEnchantClampsProbability(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	e.round(t, sess.ID, charCoin)
	e.rand.ints = []int{40}

	view, err := e.svc.Enchant(context.Background(), 1, sess.ID)
	if err != nil {
		t.Fatalf("enchant: %v", err)
	}
	if view.Round.SuccessProb != 1.0 || view.Tier.Class != "prob-perfect" {
		t.Fatalf("prob = %v tier=%s", view.Round.SuccessProb, view.Tier.Class)
	}
}

func TestEnchantCostIsPaidOnCertainRound(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	e.round(t, sess.ID, charSure)

	view, err := e.svc.Enchant(context.Background(), 1, sess.ID)
	if err != nil {
		t.Fatalf("enchant: %v", err)
	}
	if view.Round.SuccessProb != 1.0 || view.Session.CurrentCapital != 8000 {
		t.Fatalf("view: %+v", view)
	}
}

func TestEnchantInsufficientCapital(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 1999, 5)
	view := e.round(t, sess.ID, charCoin)
	if view.CanEnchant {
		t.Fatalf("can_enchant must be false below cost")
	}

	if _, err := e.svc.Enchant(context.Background(), 1, sess.ID); !errors.Is(err, model.ErrInsufficientCapital) {
		t.Fatalf("got %v, want ErrInsufficientCapital", err)
	}
	if got := e.st.session(sess.ID); got.CurrentCapital != 1999 {
		t.Fatalf("capital changed: %d", got.CurrentCapital)
	}
}

func TestEnchantDrainingCapitalFinishes(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 2000, 5)
	e.round(t, sess.ID, charCoin)

	view, err := e.svc.Enchant(context.Background(), 1, sess.ID)
	if err != nil {
		t.Fatalf("enchant: %v", err)
	}
	if !view.Session.IsFinished || view.Session.CurrentCapital != 0 {
		t.Fatalf("session: %+v", view.Session)
	}
	if *view.Session.FinalProfitRate != -100 {
		t.Fatalf("final rate = %v", *view.Session.FinalProfitRate)
	}
	if _, ok := e.rounds.Get(sess.ID); ok {
		t.Fatalf("round kept on finished session")
	}
	if len(e.st.finishes) != 1 {
		t.Fatalf("stats recorded %d times", len(e.st.finishes))
	}
}

func TestReroll(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	first := e.round(t, sess.ID, charDud)

	updated, err := e.svc.Reroll(context.Background(), 1, sess.ID)
	if err != nil {
		t.Fatalf("reroll: %v", err)
	}
	if updated.RemainingRerolls != 4 || updated.RemainingChances != 5 || updated.CurrentCapital != 10000 {
		t.Fatalf("session after reroll: %+v", updated)
	}
	if _, ok := e.rounds.Get(sess.ID); ok {
		t.Fatalf("round not cleared")
	}

	next := e.round(t, sess.ID, charSure)
	if next.Round.ID == first.Round.ID {
		t.Fatalf("reroll kept the same round")
	}
}

func TestRerollWithoutRoundStillCharges(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)

	updated, err := e.svc.Reroll(context.Background(), 1, sess.ID)
	if err != nil {
		t.Fatalf("reroll: %v", err)
	}
	if updated.RemainingRerolls != 4 {
		t.Fatalf("rerolls = %d", updated.RemainingRerolls)
	}
}

func TestRerollExhausted(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	for i := 0; i < 5; i++ {
		if _, err := e.svc.Reroll(context.Background(), 1, sess.ID); err != nil {
			t.Fatalf("reroll %d: %v", i, err)
		}
	}
	view := e.round(t, sess.ID, charCoin)

	if _, err := e.svc.Reroll(context.Background(), 1, sess.ID); !errors.Is(err, model.ErrNoRerollsLeft) {
		t.Fatalf("got %v, want ErrNoRerollsLeft", err)
	}
	got, ok := e.rounds.Get(sess.ID)
	if !ok || got.ID != view.Round.ID {
		t.Fatalf("round must survive a rejected reroll")
	}
}

func TestInvestmentView(t *testing.T) {
	e := newEnv(t)
	sess := e.start(t, 10000, 5)
	e.round(t, sess.ID, charSure)
	res, err := e.svc.Invest(context.Background(), 1, sess.ID, model.InvestRequest{Amount: 2000})
	if err != nil {
		t.Fatalf("invest: %v", err)
	}

	view, err := e.svc.Investment(context.Background(), 1, res.Investment.ID)
	if err != nil {
		t.Fatalf("investment: %v", err)
	}
	if view.CharacterKey != "sure" || view.Session.ID != sess.ID {
		t.Fatalf("view: key=%s session=%d", view.CharacterKey, view.Session.ID)
	}

	if _, err := e.svc.Investment(context.Background(), 2, res.Investment.ID); !errors.Is(err, model.ErrInvestmentNotFound) {
		t.Fatalf("foreign investment: %v", err)
	}
	if _, err := e.svc.Investment(context.Background(), 1, 999); !errors.Is(err, model.ErrInvestmentNotFound) {
		t.Fatalf("missing investment: %v", err)
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int64 }{
		{509983, 100, 5099},
		{300000, 100, 3000},
		{-150, 100, -2},
		{-100, 100, -1},
		{0, 100, 0},
	}
	for _, tc := range tests {
		if got := floorDiv(tc.a, tc.b); got != tc.want {
			t.Fatalf("floorDiv(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestBoostProb(t *testing.T) {
	tests := []struct {
		prob  float64
		boost int
		want  float64
	}{
		{0.1, 10, 0.2},
		{0.7, 50, 1.0},
		{0.3, 30, 0.6},
		{1.0, 10, 1.0},
	}
	for _, tc := range tests {
		if got := boostProb(tc.prob, tc.boost); got != tc.want {
			t.Fatalf("boostProb(%v, %d) = %v, want %v", tc.prob, tc.boost, got, tc.want)
		}
	}
}

package service

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/engine"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/game"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/scheduler"
)

// stubSource replays scripted draws, then falls back to 0 and 0.5.
type stubSource struct {
	ints   []int
	floats []float64
}

func (s *stubSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func (s *stubSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

var (
	charmander = game.Creature{ID: 1, Name: "Charmander", Type: game.TypeFire, MaxHP: 120, Speed: 10, Moves: []game.Move{
		{Name: "Scratch", Type: game.TypeNormal, Power: 15, Accuracy: 95},
		{Name: "Ember", Type: game.TypeFire, Power: 25, Accuracy: 90},
		{Name: "Fire Fang", Type: game.TypeFire, Power: 35, Accuracy: 85},
		{Name: "Growl", Type: game.TypeStatus, Power: 0, Accuracy: 100, Effect: game.EffectAttackDown},
	}}
	squirtle = game.Creature{ID: 2, Name: "Squirtle", Type: game.TypeWater, MaxHP: 125, Speed: 9, Moves: []game.Move{
		{Name: "Tackle", Type: game.TypeNormal, Power: 15, Accuracy: 95},
		{Name: "Water Gun", Type: game.TypeWater, Power: 25, Accuracy: 90},
	}}
)

func firstMovePolicy() engine.Policy {
	return engine.PolicyFunc(func([]game.Move, engine.Source) int { return 0 })
}

func newTestBattle(roster []game.Creature, src engine.Source) (*Battle, *scheduler.Manual) {
	m := scheduler.NewManual()
	b := NewBattle(StaticRoster(roster), Settings{Scheduler: m, Source: src, Policy: firstMovePolicy()})
	return b, m
}

func lastLine(s game.Snapshot) string {
	if len(s.Log) == 0 {
		return ""
	}
	return s.Log[len(s.Log)-1]
}

func TestStartSession_OpeningState(t *testing.T) {
	b, _ := newTestBattle([]game.Creature{charmander, squirtle}, &stubSource{})
	snap, err := b.StartSession(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Phase != game.PhaseInBattle || snap.Turn != game.SidePlayer || snap.Busy {
		t.Fatalf("unexpected opening state %+v", snap)
	}
	if snap.Opponent == nil || snap.Opponent.ID != 2 {
		t.Fatalf("expected Squirtle as opponent, got %+v", snap.Opponent)
	}
	if snap.PlayerHP != 120 || snap.OpponentHP != 125 {
		t.Fatalf("expected full health, got %d/%d", snap.PlayerHP, snap.OpponentHP)
	}
	if len(snap.Log) != 1 || snap.Log[0] != "Battle start! Charmander vs Squirtle!" {
		t.Fatalf("unexpected opening log %v", snap.Log)
	}
	if snap.SessionID == "" {
		t.Fatalf("expected a session id")
	}
}

func TestStartSession_Errors(t *testing.T) {
	b, _ := newTestBattle([]game.Creature{charmander}, &stubSource{})
	if _, err := b.StartSession(1); !errors.Is(err, ErrRosterTooSmall) {
		t.Fatalf("expected ErrRosterTooSmall, got %v", err)
	}

	b, _ = newTestBattle([]game.Creature{charmander, squirtle}, &stubSource{})
	if _, err := b.StartSession(99); !errors.Is(err, ErrUnknownCreature) {
		t.Fatalf("expected ErrUnknownCreature, got %v", err)
	}
	if _, err := b.StartSession(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.StartSession(2); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}
}

func TestPlayerTurn_EmberScenario(t *testing.T) {
	// pick opponent, variance 100 / accuracy roll 20, no critical
	src := &stubSource{ints: []int{0, 15}, floats: []float64{0.2, 0.5}}
	b, m := newTestBattle([]game.Creature{charmander, squirtle}, src)
	if _, err := b.StartSession(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !b.SubmitPlayerMove(1) {
		t.Fatalf("expected Ember to be accepted")
	}
	snap := b.Snapshot()
	if !snap.Busy || lastLine(snap) != "Charmander used Ember!" {
		t.Fatalf("unexpected state after submit %+v", snap)
	}

	m.Advance(500 * time.Millisecond)
	snap = b.Snapshot()
	if snap.PendingAttackAnimation == nil || snap.PendingAttackAnimation.Target != game.SideOpponent {
		t.Fatalf("expected animation aimed at opponent, got %+v", snap.PendingAttackAnimation)
	}
	if snap.OpponentHP != 125 {
		t.Fatalf("damage must wait for the hit animation")
	}

	m.Advance(600 * time.Millisecond)
	snap = b.Snapshot()
	if snap.OpponentHP != 115 {
		t.Fatalf("expected opponent at 115, got %d", snap.OpponentHP)
	}
	if snap.PendingAttackAnimation != nil || !snap.Busy {
		t.Fatalf("expected animation cleared and still busy, got %+v", snap)
	}

	m.Advance(1000 * time.Millisecond)
	snap = b.Snapshot()
	if snap.Busy || snap.Turn != game.SideOpponent {
		t.Fatalf("expected opponent turn after settle, got %+v", snap)
	}
	if m.Pending() != 1 {
		t.Fatalf("expected exactly one opponent trigger pending, got %d", m.Pending())
	}
}

func TestSubmitPlayerMove_BusyIsNoop(t *testing.T) {
	b, m := newTestBattle([]game.Creature{charmander, squirtle}, &stubSource{})
	b.StartSession(1)
	b.SubmitPlayerMove(0)
	before := b.Snapshot()
	pending := m.Pending()
	if b.SubmitPlayerMove(1) {
		t.Fatalf("second move while busy must be ignored")
	}
	if !reflect.DeepEqual(before, b.Snapshot()) {
		t.Fatalf("snapshot changed on ignored move")
	}
	if m.Pending() != pending {
		t.Fatalf("ignored move scheduled work")
	}
	if b.SubmitPlayerMove(-1) || b.SubmitPlayerMove(4) {
		t.Fatalf("out of range index must be ignored")
	}
}

func TestOpponentTurn_RunsAfterDelayAndReturnsTurn(t *testing.T) {
	b, m := newTestBattle([]game.Creature{charmander, squirtle}, &stubSource{})
	b.StartSession(1)
	b.SubmitPlayerMove(0)
	m.Advance(2100 * time.Millisecond)
	if b.Snapshot().Turn != game.SideOpponent {
		t.Fatalf("expected opponent turn")
	}
	m.Advance(999 * time.Millisecond)
	if b.Snapshot().Busy {
		t.Fatalf("opponent must wait the full think delay")
	}
	m.Advance(time.Millisecond)
	snap := b.Snapshot()
	if !snap.Busy || lastLine(snap) != "Squirtle used Tackle!" {
		t.Fatalf("expected opponent to start Tackle, got %+v", snap.Log)
	}
	if b.SubmitPlayerMove(0) {
		t.Fatalf("player move during opponent turn must be ignored")
	}
	m.Advance(2100 * time.Millisecond)
	snap = b.Snapshot()
	if snap.Turn != game.SidePlayer || snap.Busy {
		t.Fatalf("expected player turn after opponent move, got %+v", snap)
	}
	if m.Pending() != 0 {
		t.Fatalf("player turn must not auto-schedule, pending=%d", m.Pending())
	}
}

func TestMiss_HandsOverImmediately(t *testing.T) {
	// accuracy roll 99 misses Ember (90)
	src := &stubSource{floats: []float64{0.99}}
	b, m := newTestBattle([]game.Creature{charmander, squirtle}, src)
	b.StartSession(1)
	b.SubmitPlayerMove(1)
	m.Advance(500 * time.Millisecond)
	snap := b.Snapshot()
	if lastLine(snap) != "Charmander missed!" {
		t.Fatalf("expected miss line, got %q", lastLine(snap))
	}
	if snap.Busy || snap.Turn != game.SideOpponent || snap.PendingAttackAnimation != nil {
		t.Fatalf("miss should hand over without animation, got %+v", snap)
	}
	if snap.OpponentHP != 125 {
		t.Fatalf("miss must not damage")
	}
}

func TestHealScenario(t *testing.T) {
	healer := game.Creature{ID: 3, Name: "Bulbasaur", Type: game.TypeGrass, MaxHP: 130, Moves: []game.Move{
		{Name: "Recover", Type: game.TypeStatus, Power: 0, Accuracy: 100, Heal: true},
	}}
	b, m := newTestBattle([]game.Creature{healer, squirtle}, &stubSource{})
	b.StartSession(3)
	b.mu.Lock()
	b.session.PlayerHP = 100
	b.mu.Unlock()

	b.SubmitPlayerMove(0)
	m.Advance(1100 * time.Millisecond)
	snap := b.Snapshot()
	if snap.PlayerHP != 120 {
		t.Fatalf("expected heal to 120, got %d", snap.PlayerHP)
	}
	if snap.OpponentHP != 125 {
		t.Fatalf("heal move must not damage, opponent at %d", snap.OpponentHP)
	}
	if lastLine(snap) != "Bulbasaur restored 20 HP!" {
		t.Fatalf("unexpected heal line %q", lastLine(snap))
	}
}

func TestConclusion_StopsScheduling(t *testing.T) {
	glass := game.Creature{ID: 5, Name: "Magikarp", Type: game.TypeWater, MaxHP: 5, Moves: []game.Move{
		{Name: "Splash", Type: game.TypeStatus, Power: 0, Accuracy: 100},
	}}
	striker := game.Creature{ID: 6, Name: "Pikachu", Type: game.TypeElectric, MaxHP: 100, Moves: []game.Move{
		{Name: "Thunderbolt", Type: game.TypeElectric, Power: 40, Accuracy: 100},
	}}
	b, m := newTestBattle([]game.Creature{striker, glass}, &stubSource{})
	b.StartSession(6)
	b.SubmitPlayerMove(0)
	m.Advance(1100 * time.Millisecond)

	snap := b.Snapshot()
	if snap.Phase != game.PhaseConcluded || snap.OpponentHP != 0 || snap.Winner != game.SidePlayer {
		t.Fatalf("expected player victory, got %+v", snap)
	}
	if lastLine(snap) != "Magikarp fainted! You win!" {
		t.Fatalf("unexpected victory line %q", lastLine(snap))
	}

	m.RunAll(100)
	snap = b.Snapshot()
	if snap.Busy {
		t.Fatalf("busy must clear after the settle pause")
	}
	if m.Pending() != 0 {
		t.Fatalf("no work may be scheduled after conclusion, pending=%d", m.Pending())
	}
	for _, line := range snap.Log {
		if strings.HasPrefix(line, "Magikarp used") {
			t.Fatalf("opponent acted after conclusion: %v", snap.Log)
		}
	}
	if b.SubmitPlayerMove(0) {
		t.Fatalf("moves after conclusion must be ignored")
	}
}

func TestReset_MidTurnDiscardsSession(t *testing.T) {
	b, m := newTestBattle([]game.Creature{charmander, squirtle}, &stubSource{})
	b.StartSession(1)
	b.SubmitPlayerMove(0)
	m.Advance(500 * time.Millisecond)

	b.ResetToSelection()
	snap := b.Snapshot()
	if snap.Phase != game.PhaseSelecting || len(snap.Log) != 0 || snap.Player != nil {
		t.Fatalf("expected clean selecting state, got %+v", snap)
	}
	if m.Pending() != 0 {
		t.Fatalf("reset must cancel pending callbacks, pending=%d", m.Pending())
	}
	m.RunAll(100)
	if b.Snapshot().Phase != game.PhaseSelecting {
		t.Fatalf("stale callback revived the battle")
	}
}

func TestReset_NewSessionNeverMirrorsPlayer(t *testing.T) {
	roster := []game.Creature{charmander, squirtle, {ID: 3, Name: "Bulbasaur", MaxHP: 130, Moves: charmander.Moves}, {ID: 4, Name: "Pikachu", MaxHP: 100, Moves: charmander.Moves}}
	b, _ := newTestBattle(roster, engine.NewSource(9))
	for i := 0; i < 200; i++ {
		id := uint(i%4 + 1)
		snap, err := b.StartSession(id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if snap.Opponent.ID == id {
			t.Fatalf("opponent mirrors player %d", id)
		}
		if len(snap.Log) != 1 {
			t.Fatalf("new session must start with a fresh log, got %v", snap.Log)
		}
		b.ResetToSelection()
	}
}

func TestRandomMatch_HealthBoundsAndTermination(t *testing.T) {
	src := engine.NewSource(21)
	m := scheduler.NewManual()
	b := NewBattle(StaticRoster{charmander, squirtle}, Settings{Scheduler: m, Source: src})
	b.StartSession(1)
	for i := 0; i < 5000; i++ {
		snap := b.Snapshot()
		if snap.PlayerHP < 0 || snap.PlayerHP > 120 || snap.OpponentHP < 0 || snap.OpponentHP > 125 {
			t.Fatalf("health out of bounds: %d/%d", snap.PlayerHP, snap.OpponentHP)
		}
		if snap.Phase == game.PhaseConcluded && m.Pending() == 0 {
			return
		}
		if snap.Turn == game.SidePlayer && !snap.Busy && snap.Phase == game.PhaseInBattle {
			b.SubmitPlayerMove(src.Intn(len(charmander.Moves)))
		}
		m.RunAll(1)
	}
	t.Fatalf("match did not conclude")
}

func TestSubscribe_ReceivesUpdates(t *testing.T) {
	b, _ := newTestBattle([]game.Creature{charmander, squirtle}, &stubSource{})
	ch, cancel := b.Subscribe()
	first := <-ch
	if first.Phase != game.PhaseSelecting {
		t.Fatalf("expected initial selecting snapshot, got %s", first.Phase)
	}
	b.StartSession(1)
	next := <-ch
	if next.Phase != game.PhaseInBattle {
		t.Fatalf("expected in_battle snapshot, got %s", next.Phase)
	}
	cancel()
	cancel()
	for range ch {
	}
}

func TestOpponentTurn_UnusablePolicyChoiceReturnsTurn(t *testing.T) {
	m := scheduler.NewManual()
	bad := engine.PolicyFunc(func([]game.Move, engine.Source) int { return 99 })
	b := NewBattle(StaticRoster{charmander, squirtle}, Settings{Scheduler: m, Source: &stubSource{}, Policy: bad})
	if _, err := b.StartSession(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.SubmitPlayerMove(0)
	m.Advance(2100 * time.Millisecond)
	if snap := b.Snapshot(); snap.Turn != game.SideOpponent {
		t.Fatalf("expected opponent turn after the player's move, got %s", snap.Turn)
	}
	m.Advance(1000 * time.Millisecond)
	snap := b.Snapshot()
	if snap.Turn != game.SidePlayer || snap.Busy {
		t.Fatalf("expected the turn back with the player, got %+v", snap)
	}
	if !b.SubmitPlayerMove(0) {
		t.Fatalf("player should be able to move again")
	}
}

func TestConclusion_PlayerDefeat(t *testing.T) {
	weak := game.Creature{ID: 7, Name: "Weak", Type: game.TypeNormal, MaxHP: 5, Moves: []game.Move{
		{Name: "Splash", Type: game.TypeStatus, Power: 0, Accuracy: 100},
	}}
	bolt := game.Creature{ID: 8, Name: "Pikachu", Type: game.TypeElectric, MaxHP: 100, Moves: []game.Move{
		{Name: "Bolt", Type: game.TypeElectric, Power: 40, Accuracy: 100},
	}}
	b, m := newTestBattle([]game.Creature{weak, bolt}, &stubSource{})
	if _, err := b.StartSession(7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.SubmitPlayerMove(0)
	// player turn settles at 2100ms, the opponent acts at 3100ms and hits at 4200ms
	m.Advance(4200 * time.Millisecond)

	snap := b.Snapshot()
	if snap.Phase != game.PhaseConcluded || snap.Winner != game.SideOpponent || snap.PlayerHP != 0 {
		t.Fatalf("expected opponent victory, got %+v", snap)
	}
	if lastLine(snap) != "Weak fainted... You lose!" {
		t.Fatalf("unexpected defeat line %q", lastLine(snap))
	}

	m.RunAll(100)
	if m.Pending() != 0 {
		t.Fatalf("no work may be scheduled after conclusion, pending=%d", m.Pending())
	}
	snap = b.Snapshot()
	if snap.Busy || snap.Phase != game.PhaseConcluded {
		t.Fatalf("expected idle concluded state, got %+v", snap)
	}
	if b.SubmitPlayerMove(0) {
		t.Fatalf("moves after conclusion must be ignored")
	}
}

func TestConclude_CancelsPendingOpponentTrigger(t *testing.T) {
	b, m := newTestBattle([]game.Creature{charmander, squirtle}, &stubSource{})
	b.StartSession(1)

	b.mu.Lock()
	b.session.Turn = game.SideOpponent
	b.scheduleOpponentLocked()
	if b.opponentTimer == 0 || len(b.timers) != 1 {
		b.mu.Unlock()
		t.Fatalf("expected one pending opponent trigger, got %d timers", len(b.timers))
	}
	b.concludeLocked(game.SidePlayer)
	timers, pending := len(b.timers), b.opponentTimer
	b.mu.Unlock()

	if timers != 0 || pending != 0 {
		t.Fatalf("conclusion must forget the opponent trigger, timers=%d id=%d", timers, pending)
	}
	if m.Pending() != 0 {
		t.Fatalf("opponent trigger still scheduled, pending=%d", m.Pending())
	}
}

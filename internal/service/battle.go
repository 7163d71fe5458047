package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/looplab/fsm"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/constants"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/engine"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/game"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/logging"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/scheduler"
)

var (
	ErrUnknownCreature = errors.New("unknown creature")
	ErrRosterTooSmall  = errors.New("roster needs at least two creatures")
	ErrSessionActive   = errors.New("a session is already in battle")
)

// Roster is the minimal roster source required by Battle. Using a small
// interface simplifies testing.
type Roster interface {
	ListCreatures() ([]game.Creature, error)
}

// Settings configures a Battle. Zero fields take defaults: real timers,
// a time-seeded source, the uniform random policy and game.DefaultRules.
type Settings struct {
	Scheduler scheduler.Scheduler
	Source    engine.Source
	Policy    engine.Policy
	Rules     *game.Rules
}

const (
	eventStart    = "start"
	eventConclude = "conclude"
	eventReset    = "reset"

	subscriberBuffer = 16
)

// Battle owns the single match of one player against the computer. Every
// session mutation happens under mu, either from a public method or from a
// scheduled callback.
type Battle struct {
	mu sync.Mutex

	roster Roster
	sched  scheduler.Scheduler
	src    engine.Source
	policy engine.Policy
	rules  game.Rules
	phase  *fsm.FSM

	session *game.Session
	// gen increments whenever the session is replaced or discarded; a
	// callback scheduled under an older generation is dropped when it fires.
	gen      uint64
	timers   map[uint64]scheduler.Timer
	timerSeq uint64
	// opponentTimer is the id of the pending opponent trigger, 0 when none.
	opponentTimer uint64

	subs    map[int]chan game.Snapshot
	nextSub int
}

// NewBattle creates a Battle in the selecting phase.
func NewBattle(roster Roster, st Settings) *Battle {
	b := &Battle{
		roster: roster,
		sched:  st.Scheduler,
		src:    st.Source,
		policy: st.Policy,
		rules:  game.DefaultRules(),
		timers: make(map[uint64]scheduler.Timer),
		subs:   make(map[int]chan game.Snapshot),
	}
	if b.sched == nil {
		b.sched = scheduler.Real{}
	}
	if b.src == nil {
		b.src = engine.NewSource(time.Now().UnixNano())
	}
	if b.policy == nil {
		b.policy = engine.RandomPolicy{}
	}
	if st.Rules != nil {
		b.rules = *st.Rules
	}
	b.phase = newPhaseMachine()
	return b
}

// newPhaseMachine builds the one-way selecting -> in_battle -> concluded
// machine. reset is the only way back to selecting.
func newPhaseMachine() *fsm.FSM {
	return fsm.NewFSM(
		string(game.PhaseSelecting),
		fsm.Events{
			{Name: eventStart, Src: []string{string(game.PhaseSelecting)}, Dst: string(game.PhaseInBattle)},
			{Name: eventConclude, Src: []string{string(game.PhaseInBattle)}, Dst: string(game.PhaseConcluded)},
			{Name: eventReset, Src: []string{string(game.PhaseInBattle), string(game.PhaseConcluded)}, Dst: string(game.PhaseSelecting)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logging.Info("battle phase changed", logging.Fields{constants.LogFieldEvent: e.Event, constants.LogFieldPhase: e.Dst})
			},
		},
	)
}

func (b *Battle) currentPhase() game.Phase { return game.Phase(b.phase.Current()) }

func (b *Battle) transition(event string) {
	if err := b.phase.Event(context.Background(), event); err != nil {
		logging.Error("battle phase transition rejected", err, logging.Fields{constants.LogFieldEvent: event})
	}
}

// ListRoster returns the creatures available for selection.
func (b *Battle) ListRoster() ([]game.Creature, error) {
	return b.roster.ListCreatures()
}

// Snapshot returns the current state.
func (b *Battle) Snapshot() game.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Battle) snapshotLocked() game.Snapshot {
	if b.session == nil {
		return game.SelectingSnapshot()
	}
	return b.session.Snapshot(b.currentPhase())
}

// Subscribe returns a channel receiving a snapshot after every mutation,
// starting with the current state. When a subscriber falls behind the
// oldest buffered snapshot is dropped. cancel closes the channel.
func (b *Battle) Subscribe() (<-chan game.Snapshot, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextSub
	b.nextSub++
	ch := make(chan game.Snapshot, subscriberBuffer)
	ch <- b.snapshotLocked()
	b.subs[id] = ch
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

func (b *Battle) publishLocked() {
	if len(b.subs) == 0 {
		return
	}
	snap := b.snapshotLocked()
	for _, ch := range b.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// ResetToSelection discards the session, cancels every pending callback
// and returns to the selecting phase.
func (b *Battle) ResetToSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetLocked()
	b.publishLocked()
}

func (b *Battle) resetLocked() {
	for id, t := range b.timers {
		t.Stop()
		delete(b.timers, id)
	}
	b.opponentTimer = 0
	b.gen++
	if b.session != nil {
		logging.Info("battle session discarded", logging.Fields{constants.LogFieldSessionID: b.session.ID})
	}
	b.session = nil
	if b.currentPhase() != game.PhaseSelecting {
		b.transition(eventReset)
	}
}

// Close cancels pending callbacks and closes every subscriber channel.
func (b *Battle) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetLocked()
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// after schedules fn under the battle lock, bound to the current session
// generation. It returns the timer id for cancelLocked.
func (b *Battle) after(d time.Duration, fn func()) uint64 {
	gen := b.gen
	b.timerSeq++
	id := b.timerSeq
	t := b.sched.AfterFunc(d, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.timers, id)
		if gen != b.gen || b.session == nil {
			return
		}
		fn()
	})
	b.timers[id] = t
	return id
}

// cancelLocked stops the timer with id and forgets it.
func (b *Battle) cancelLocked(id uint64) {
	if t, ok := b.timers[id]; ok {
		t.Stop()
		delete(b.timers, id)
	}
}

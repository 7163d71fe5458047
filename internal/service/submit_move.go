package service

import (
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/engine"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/game"
)

// SubmitPlayerMove starts the player's turn with the move at moveIndex.
// Calls outside the player's turn, while a turn is resolving, after the
// match concluded or with an out-of-range index are ignored; the return
// value reports whether the move was accepted.
func (b *Battle) SubmitPlayerMove(moveIndex int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.session
	if s == nil || s.Turn != game.SidePlayer || s.Busy {
		return false
	}
	if moveIndex < 0 || moveIndex >= len(s.Player.Moves) {
		return false
	}
	return b.executeTurnLocked(game.SidePlayer, s.Player.Moves[moveIndex])
}

// executeTurnLocked is the entry point of the turn chain. Only this chain
// mutates health, turn and log.
//
//	begin -> PreResolveDelay -> accuracy -> HitDelay -> apply -> PostResolveDelay -> finish
//
// A miss skips straight from accuracy to handoff.
func (b *Battle) executeTurnLocked(side game.Side, move game.Move) bool {
	s := b.session
	if s == nil || b.currentPhase() != game.PhaseInBattle {
		return false
	}
	if !engine.BeginTurn(s, side, move) {
		return false
	}
	b.publishLocked()
	b.after(b.rules.PreResolveDelay, func() { b.resolveAccuracyLocked(side, move) })
	return true
}

func (b *Battle) resolveAccuracyLocked(side game.Side, move game.Move) {
	s := b.session
	if !engine.CheckAccuracy(s, side, move, b.src) {
		b.publishLocked()
		b.handOffLocked()
		return
	}
	b.publishLocked()
	b.after(b.rules.HitDelay, func() { b.applyHitLocked(side, move) })
}

func (b *Battle) applyHitLocked(side game.Side, move game.Move) {
	s := b.session
	engine.ApplyHit(s, side, move, b.src, b.rules.HealAmount)
	b.publishLocked()
	b.judgeLocked()
	b.after(b.rules.PostResolveDelay, b.finishTurnLocked)
}

func (b *Battle) finishTurnLocked() {
	engine.EndTurn(b.session)
	b.handOffLocked()
}

// handOffLocked gives the turn to the other side. A concluded match keeps
// its final turn owner.
func (b *Battle) handOffLocked() {
	if b.currentPhase() != game.PhaseInBattle {
		b.publishLocked()
		return
	}
	engine.HandOff(b.session)
	b.publishLocked()
	b.judgeLocked()
}

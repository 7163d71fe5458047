package service

import (
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/constants"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/engine"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/game"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/logging"
)

// judgeLocked runs after every health or turn mutation. Behavior:
// - opponent down -> conclude with a player win
// - player down -> conclude with a player loss
// - opponent's turn and idle -> schedule the opponent's move
func (b *Battle) judgeLocked() {
	s := b.session
	if s == nil || b.currentPhase() != game.PhaseInBattle {
		return
	}
	if winner := engine.Verdict(s); winner != game.SideNone {
		b.concludeLocked(winner)
		return
	}
	if s.Turn == game.SideOpponent && !s.Busy {
		b.scheduleOpponentLocked()
	}
}

func (b *Battle) concludeLocked(winner game.Side) {
	s := b.session
	engine.Conclude(s, winner)
	b.transition(eventConclude)
	if b.opponentTimer != 0 {
		b.cancelLocked(b.opponentTimer)
		b.opponentTimer = 0
	}
	logging.Info("battle concluded", logging.Fields{
		constants.LogFieldSessionID: s.ID,
		constants.LogFieldWinner:    string(winner),
	})
	b.publishLocked()
}

// scheduleOpponentLocked arms the opponent's think delay once; repeated
// guard evaluations while it is pending do not stack triggers.
func (b *Battle) scheduleOpponentLocked() {
	if b.opponentTimer != 0 {
		return
	}
	b.opponentTimer = b.after(b.rules.OpponentTurnDelay, func() {
		b.opponentTimer = 0
		b.opponentTurnLocked()
	})
}

func (b *Battle) opponentTurnLocked() {
	s := b.session
	if b.currentPhase() != game.PhaseInBattle || s.Turn != game.SideOpponent || s.Busy {
		return
	}
	idx := b.policy.Choose(s.Opponent.Moves, b.src)
	if idx < 0 || idx >= len(s.Opponent.Moves) {
		logging.Warn("opponent policy returned no usable move", logging.Fields{
			constants.LogFieldSessionID: s.ID,
			constants.LogFieldCreature:  s.Opponent.Name,
		})
		b.handOffLocked()
		return
	}
	move := s.Opponent.Moves[idx]
	logging.Info("opponent move chosen", logging.Fields{constants.LogFieldSessionID: s.ID, constants.LogFieldMove: move.Name})
	b.executeTurnLocked(game.SideOpponent, move)
}

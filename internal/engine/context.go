package engine

import "github.com/TBKT-SYSTEM/pokemon-battle/internal/game"

// --- Turn context -----------------------------------------------------
// A turnContext binds one move of one side to the session it mutates.
// The battle service builds a fresh one for every step of a turn.
type turnContext struct {
	s        *game.Session
	attacker game.Side
	move     game.Move
}

func newTurnContext(s *game.Session, attacker game.Side, move game.Move) *turnContext {
	return &turnContext{s: s, attacker: attacker, move: move}
}

func (tc *turnContext) add(msg string) { tc.s.AddLog(msg) }

func (tc *turnContext) defender() game.Side { return tc.attacker.Opposite() }

func (tc *turnContext) attackerName() string { return tc.s.Creature(tc.attacker).Name }

func (tc *turnContext) defenderName() string { return tc.s.Creature(tc.defender()).Name }

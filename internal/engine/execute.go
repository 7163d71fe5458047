package engine

import "github.com/TBKT-SYSTEM/pokemon-battle/internal/game"

// The functions below are the individual steps of one turn. Each step is an
// observable state transition; the battle service runs them in order and
// inserts the timed pauses between them. They never block.

// OpenSession writes the opening narration into a fresh session.
func OpenSession(s *game.Session) {
	s.AddLog(openingLine(s.Player.Name, s.Opponent.Name))
}

// BeginTurn locks the session and announces the move. It returns false and
// leaves the session untouched when a turn is already in flight.
func BeginTurn(s *game.Session, attacker game.Side, move game.Move) bool {
	if s.Busy {
		return false
	}
	tc := newTurnContext(s, attacker, move)
	s.Busy = true
	tc.add(usedLine(tc.attackerName(), move.Name))
	return true
}

// CheckAccuracy rolls the accuracy check. On a miss it logs the miss and
// releases the busy lock; on a hit it starts the attack animation aimed at
// the defender.
func CheckAccuracy(s *game.Session, attacker game.Side, move game.Move, src Source) bool {
	tc := newTurnContext(s, attacker, move)
	if !RollAccuracy(move, src) {
		tc.add(missedLine(tc.attackerName()))
		s.Busy = false
		return false
	}
	s.Animation = &game.AttackAnimation{Type: move.Type, Target: tc.defender()}
	return true
}

// ApplyHit ends the animation, resolves the move and applies damage and
// healing to the session.
func ApplyHit(s *game.Session, attacker game.Side, move game.Move, src Source, healAmount int) Outcome {
	tc := newTurnContext(s, attacker, move)
	s.Animation = nil

	out := Resolve(move, s.Creature(attacker), s.Creature(tc.defender()), src)
	if out.Damage > 0 {
		s.SetHP(tc.defender(), s.HP(tc.defender())-out.Damage)
		tc.add(damageLine(tc.defenderName(), out))
	}
	if move.Heal {
		before := s.HP(attacker)
		s.SetHP(attacker, before+healAmount)
		tc.add(healLine(tc.attackerName(), s.HP(attacker)-before))
	}
	return out
}

// EndTurn releases the busy lock after the settle pause.
func EndTurn(s *game.Session) { s.Busy = false }

// HandOff passes the turn to the other side.
func HandOff(s *game.Session) { s.Turn = s.Turn.Opposite() }

// Verdict returns the winning side, or SideNone while both creatures stand.
// The opponent is checked first, so a simultaneous knockout is a win.
func Verdict(s *game.Session) game.Side {
	if s.OpponentHP <= 0 {
		return game.SidePlayer
	}
	if s.PlayerHP <= 0 {
		return game.SideOpponent
	}
	return game.SideNone
}

// Conclude records the winner and appends the closing narration.
func Conclude(s *game.Session, winner game.Side) {
	s.Winner = winner
	s.Animation = nil
	if winner == game.SidePlayer {
		s.AddLog(victoryLine(s.Opponent.Name))
	} else {
		s.AddLog(defeatLine(s.Player.Name))
	}
}

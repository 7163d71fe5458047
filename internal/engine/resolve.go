package engine

import "github.com/TBKT-SYSTEM/pokemon-battle/internal/game"

const (
	varianceMin   = 85
	varianceSpan  = 16 // 85..100 inclusive
	criticalRatio = 1.0 / 16
)

// Outcome is the result of resolving one hit.
type Outcome struct {
	Damage        int
	Effectiveness EffectivenessTag
	Critical      bool
	// Variance is the drawn percentage in [85, 100].
	Variance int
}

// Resolve computes the damage move deals to defender. The variance draw
// happens before the critical draw; both are taken even for zero-power
// moves so the draw sequence of a match does not depend on the move list.
//
// The formula is floor(floor(power*0.8) * multiplier * crit * variance/100),
// evaluated in integers. Attacker stats do not feed the formula.
func Resolve(move game.Move, attacker, defender game.Creature, src Source) Outcome {
	tag := TagNeutral
	if !move.IsStatus() {
		tag = matchupTag(move.Type, defender.Type)
	}
	variance := varianceMin + src.Intn(varianceSpan)
	critical := src.Float64() < criticalRatio

	out := Outcome{Effectiveness: tag, Critical: critical, Variance: variance}
	if move.Power <= 0 {
		return out
	}

	base := move.Power * 4 / 5
	critNum, critDen := 2, 2
	if critical {
		critNum = 3
	}
	out.Damage = base * multiplierQuarters(tag) * critNum * variance / (4 * critDen * 100)
	return out
}

// Hits reports whether an accuracy roll in [0, 100) lands. A roll strictly
// above accuracy misses; accuracy 0 never hits.
func Hits(accuracy int, roll float64) bool {
	if accuracy <= 0 {
		return false
	}
	return roll <= float64(accuracy)
}

// RollAccuracy draws the accuracy roll for move from src.
func RollAccuracy(move game.Move, src Source) bool {
	return Hits(move.Accuracy, src.Float64()*100)
}

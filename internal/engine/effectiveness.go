package engine

import "github.com/TBKT-SYSTEM/pokemon-battle/internal/game"

// EffectivenessTag annotates a resolved hit for the battle log.
type EffectivenessTag string

const (
	TagNeutral EffectivenessTag = ""
	TagSuper   EffectivenessTag = "super"
	TagWeak    EffectivenessTag = "weak"
)

type matchup struct {
	strong []game.ElementType
	weak   []game.ElementType
}

// typeChart is asymmetric on purpose: water is weak against electric but
// electric has no weakness listed against water's counterpart.
var typeChart = map[game.ElementType]matchup{
	game.TypeFire: {
		strong: []game.ElementType{game.TypeGrass},
		weak:   []game.ElementType{game.TypeWater},
	},
	game.TypeWater: {
		strong: []game.ElementType{game.TypeFire},
		weak:   []game.ElementType{game.TypeGrass, game.TypeElectric},
	},
	game.TypeGrass: {
		strong: []game.ElementType{game.TypeWater},
		weak:   []game.ElementType{game.TypeFire},
	},
	game.TypeElectric: {
		strong: []game.ElementType{game.TypeWater},
	},
	game.TypeNormal: {},
}

// Effectiveness returns 2.0 when attack is strong against defender, 0.5
// when weak and 1.0 otherwise. Unknown types are neutral.
func Effectiveness(attack, defender game.ElementType) float64 {
	switch matchupTag(attack, defender) {
	case TagSuper:
		return 2.0
	case TagWeak:
		return 0.5
	}
	return 1.0
}

func matchupTag(attack, defender game.ElementType) EffectivenessTag {
	m, ok := typeChart[attack]
	if !ok {
		return TagNeutral
	}
	if containsType(m.strong, defender) {
		return TagSuper
	}
	if containsType(m.weak, defender) {
		return TagWeak
	}
	return TagNeutral
}

// multiplierQuarters is the effectiveness multiplier expressed in quarters
// so damage can be computed with integer arithmetic.
func multiplierQuarters(tag EffectivenessTag) int {
	switch tag {
	case TagSuper:
		return 8
	case TagWeak:
		return 2
	}
	return 4
}

func containsType(list []game.ElementType, t game.ElementType) bool {
	for _, x := range list {
		if x == t {
			return true
		}
	}
	return false
}

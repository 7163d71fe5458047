package game

// ElementType is the elemental affinity of a creature or a move. Creatures use
// the five combat types; moves may additionally be TypeStatus.
type ElementType string

const (
	TypeNormal   ElementType = "normal"
	TypeFire     ElementType = "fire"
	TypeWater    ElementType = "water"
	TypeGrass    ElementType = "grass"
	TypeElectric ElementType = "electric"
	TypeStatus   ElementType = "status"
)

// EffectAttackDown is the only recognised move effect tag.
const EffectAttackDown = "atk_down"

// CombatTypes lists the types a creature may have.
var CombatTypes = []ElementType{TypeNormal, TypeFire, TypeWater, TypeGrass, TypeElectric}

// IsCombatType reports whether t is one of the five creature types.
func IsCombatType(t ElementType) bool {
	for _, c := range CombatTypes {
		if c == t {
			return true
		}
	}
	return false
}

// IsMoveType reports whether t may appear on a move.
func IsMoveType(t ElementType) bool {
	return t == TypeStatus || IsCombatType(t)
}

// Side identifies one of the two participants of a session.
type Side string

const (
	SideNone     Side = ""
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

// Opposite returns the other participant.
func (s Side) Opposite() Side {
	switch s {
	case SidePlayer:
		return SideOpponent
	case SideOpponent:
		return SidePlayer
	}
	return SideNone
}

// Phase is the match phase. Transitions are one-way within a session:
// selecting -> in_battle -> concluded; a reset starts over at selecting.
type Phase string

const (
	PhaseSelecting Phase = "selecting"
	PhaseInBattle  Phase = "in_battle"
	PhaseConcluded Phase = "concluded"
)

package engine

import "github.com/TBKT-SYSTEM/pokemon-battle/internal/game"

// Policy picks the opponent's move. It returns an index into moves.
type Policy interface {
	Choose(moves []game.Move, src Source) int
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(moves []game.Move, src Source) int

func (f PolicyFunc) Choose(moves []game.Move, src Source) int { return f(moves, src) }

// RandomPolicy picks uniformly among the available moves.
type RandomPolicy struct{}

func (RandomPolicy) Choose(moves []game.Move, src Source) int {
	if len(moves) == 0 {
		return -1
	}
	return src.Intn(len(moves))
}

// PickOpponent selects an opponent uniformly among roster entries other
// than the player's choice. ok is false when no other entry exists.
func PickOpponent(roster []game.Creature, playerID uint, src Source) (game.Creature, bool) {
	others := make([]game.Creature, 0, len(roster))
	for _, c := range roster {
		if c.ID != playerID {
			others = append(others, c)
		}
	}
	if len(others) == 0 {
		return game.Creature{}, false
	}
	return others[src.Intn(len(others))], true
}

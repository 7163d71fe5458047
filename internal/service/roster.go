package service

import (
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/game"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/keys"
)

// StaticRoster serves a fixed in-memory roster.
type StaticRoster []game.Creature

func (r StaticRoster) ListCreatures() ([]game.Creature, error) {
	out := make([]game.Creature, len(r))
	copy(out, r)
	return out, nil
}

// GetCreatureByName finds a creature by case-insensitive name.
func (r StaticRoster) GetCreatureByName(name string) (*game.Creature, error) {
	key := keys.CreatureKey(name)
	for i := range r {
		if key != "" && keys.CreatureKey(r[i].Name) == key {
			c := r[i]
			return &c, nil
		}
	}
	return nil, ErrUnknownCreature
}

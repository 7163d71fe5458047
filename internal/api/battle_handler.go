package api

import (
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/game"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/service"
)

// CreatureFinder looks a roster entry up by name.
type CreatureFinder interface {
	GetCreatureByName(name string) (*game.Creature, error)
}

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	battle *service.Battle
	finder CreatureFinder
}

// NewBattleHandler creates a BattleHandler driving battle. finder serves
// the by-name roster lookup.
func NewBattleHandler(battle *service.Battle, finder CreatureFinder) *BattleHandler {
	return &BattleHandler{battle: battle, finder: finder}
}

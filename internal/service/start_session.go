package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/constants"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/engine"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/game"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/logging"
)

// StartSession creates a session for the chosen creature against an
// opponent picked uniformly among the rest of the roster. A concluded
// session is discarded first; a session still in battle must be reset.
func (b *Battle) StartSession(creatureID uint) (game.Snapshot, error) {
	roster, err := b.roster.ListCreatures()
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("load roster: %w", err)
	}
	if len(roster) < 2 {
		return game.Snapshot{}, ErrRosterTooSmall
	}
	player, ok := game.FindCreature(roster, creatureID)
	if !ok {
		return game.Snapshot{}, ErrUnknownCreature
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.currentPhase() {
	case game.PhaseInBattle:
		return game.Snapshot{}, ErrSessionActive
	case game.PhaseConcluded:
		b.resetLocked()
	}

	opponent, ok := engine.PickOpponent(roster, player.ID, b.src)
	if !ok {
		return game.Snapshot{}, ErrRosterTooSmall
	}

	b.gen++
	s := game.NewSession(uuid.NewString(), player, opponent)
	engine.OpenSession(s)
	b.session = s
	b.transition(eventStart)

	logging.Info("battle session started", logging.Fields{
		constants.LogFieldSessionID: s.ID,
		constants.LogFieldCreature:  player.Name,
		constants.LogFieldOpponent:  opponent.Name,
	})
	b.publishLocked()
	return b.snapshotLocked(), nil
}
